package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/todoapi/internal/flagx"
)

// parseFlags populates Config from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":3000")
//	-g string   gRPC health bind address (e.g. ":50051")
//	-store      memory | mongo | postgres | firestore
//	-m string   MongoDB URI
//	-db string  MongoDB database name
//	-d string   PostgreSQL DSN
//	-f string   Firestore project id
//	-s string   token signing secret
//	-t int      token validity in minutes (0 = never expires)
//	-o string   ownership mode: legacy | strict
//	-cors       comma-separated CORS origins
//	-l string   log level
//
// Only the flags above are taken from args, so the -c and -env flags of the
// other layers pass through untouched.
func parseFlags(config *Config, args []string) {
	args = flagx.FilterArgs(args, []string{
		"-a", "-g", "-store", "-m", "-db", "-d", "-f", "-s", "-t", "-o", "-cors", "-l",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC health address and port")
	fs.StringVar(&config.StoreKind, "store", config.StoreKind, "store backend")
	fs.StringVar(&config.MongoURI, "m", config.MongoURI, "MongoDB URI")
	fs.StringVar(&config.MongoDatabase, "db", config.MongoDatabase, "MongoDB database")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&config.FirestoreProjectID, "f", config.FirestoreProjectID, "Firestore project id")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	tokenValidity := fs.Int("t", 0, "token validity (in minutes, 0 = never)")
	fs.StringVar(&config.OwnershipMode, "o", config.OwnershipMode, "ownership mode: legacy or strict")
	cors := fs.String("cors", "", "comma-separated CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		case "cors":
			config.CORSAllowedOrigins = splitList(*cors)
		}
	})
}
