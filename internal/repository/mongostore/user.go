package mongostore

import (
	"context"

	"recipe_manager/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateUser inserts a new user; the unique email index yields domain.ErrConflict
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	_, err := s.users.InsertOne(ctx, newUserDoc(user))
	return wrapError(err, "create user")
}

// FindUserByID loads a user by id
func (s *Store) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"_id": id}, "find user by id")
}

// FindUserByEmail loads a user by login email
func (s *Store) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.findUser(ctx, bson.M{"email": email}, "find user by email")
}

func (s *Store) findUser(ctx context.Context, filter bson.M, op string) (*domain.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, wrapError(err, op)
	}
	return doc.toDomain(), nil
}

// UpdateProfile overwrites username and bio and returns the new state
func (s *Store) UpdateProfile(ctx context.Context, id, username, bio string) (*domain.User, error) {
	var doc userDoc
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"username": username, "bio": bio}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, wrapError(err, "update profile")
	}
	return doc.toDomain(), nil
}

// UpdatePasswordHash replaces the stored password hash
func (s *Store) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	res, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash}})
	if err != nil {
		return wrapError(err, "update password")
	}
	if res.MatchedCount == 0 {
		return wrapError(mongo.ErrNoDocuments, "update password")
	}
	return nil
}

// owners resolves the public identity of each user id
func (s *Store) owners(ctx context.Context, ids []string) (map[string]*domain.Owner, error) {
	out := make(map[string]*domain.Owner, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1, "email": 1}))
	if err != nil {
		return nil, wrapError(err, "resolve owners")
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, wrapError(err, "resolve owners")
	}
	for _, d := range docs {
		out[d.ID] = d.toDomain().Owner()
	}
	return out, nil
}
