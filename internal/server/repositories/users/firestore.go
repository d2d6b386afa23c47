package users

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"cloud.google.com/go/firestore"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreToken struct {
	Access string `firestore:"access"`
	Token  string `firestore:"token"`
}

type firestoreUser struct {
	Email    string           `firestore:"email"`
	Password string           `firestore:"password"`
	Tokens   []firestoreToken `firestore:"tokens"`
}

// emailIndexCollection maps an email to its user id. Creating the index
// document first makes email uniqueness a store-level guarantee.
const emailIndexCollection = "user_emails"

// FirestoreRepository stores users as documents keyed by their id. Token
// membership is changed with ArrayUnion/ArrayRemove.
type FirestoreRepository struct {
	client *firestore.Client
}

func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) users() *firestore.CollectionRef {
	return r.client.Collection(CollectionName)
}

func (r *FirestoreRepository) emails() *firestore.CollectionRef {
	return r.client.Collection(emailIndexCollection)
}

func (r *FirestoreRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == "" {
		user.ID = models.NewID()
	}

	doc := firestoreUser{Email: user.Email, Password: user.Password, Tokens: []firestoreToken{}}
	for _, t := range user.Tokens {
		doc.Tokens = append(doc.Tokens, firestoreToken(t))
	}

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(r.emails().Doc(url.PathEscape(user.Email)), map[string]any{"userId": user.ID}); err != nil {
			return err
		}
		return tx.Create(r.users().Doc(user.ID), doc)
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func firestoreToModel(id string, snap *firestore.DocumentSnapshot) (*models.User, error) {
	var doc firestoreUser
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	u := &models.User{ID: id, Email: doc.Email, Password: doc.Password}
	for _, t := range doc.Tokens {
		u.Tokens = append(u.Tokens, models.Token(t))
	}
	return u, nil
}

func (r *FirestoreRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	iter := r.users().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if errors.Is(err, iterator.Done) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return firestoreToModel(snap.Ref.ID, snap)
}

func (r *FirestoreRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	snap, err := r.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return firestoreToModel(id, snap)
}

func (r *FirestoreRepository) AddToken(ctx context.Context, userID string, token models.Token) error {
	_, err := r.users().Doc(userID).Update(ctx, []firestore.Update{
		{Path: "tokens", Value: firestore.ArrayUnion(firestoreToken(token))},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) RemoveToken(ctx context.Context, userID string, token models.Token) error {
	_, err := r.users().Doc(userID).Update(ctx, []firestore.Update{
		{Path: "tokens", Value: firestore.ArrayRemove(firestoreToken(token))},
	})
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *FirestoreRepository) Delete(ctx context.Context, id string) (*models.User, error) {
	var user *models.User

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.users().Doc(id)
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		if user, err = firestoreToModel(id, snap); err != nil {
			return err
		}
		if err := tx.Delete(r.emails().Doc(url.PathEscape(user.Email))); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
