package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openkitchen/recipe-catalog/internal/core/domain"
)

const collectionRecipes = "recipes"

// RecipeRepository is the durable store driver for recipes. Numeric ids come
// from the counters collection; append-only fields use $push and likes $inc
// so the invariants hold even under concurrent writers.
type RecipeRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{db: db, col: db.Collection(collectionRecipes)}
}

func (r *RecipeRepository) Create(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionRecipes)
	if err != nil {
		return nil, err
	}

	stored := recipe.Clone()
	stored.ID = id
	if _, err := r.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	return stored, nil
}

func (r *RecipeRepository) FindByID(ctx context.Context, id int) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var recipe domain.Recipe
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&recipe); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// List fetches the collection ordered by id (insertion order) and applies
// the domain filter, keeping filter semantics identical across drivers.
func (r *RecipeRepository) List(ctx context.Context, filter domain.RecipeFilter) ([]*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	matched := []*domain.Recipe{}
	for cur.Next(ctx) {
		var recipe domain.Recipe
		if err := cur.Decode(&recipe); err != nil {
			return nil, err
		}
		if filter.Matches(&recipe) {
			clone := recipe
			matched = append(matched, &clone)
		}
	}
	return matched, cur.Err()
}

func (r *RecipeRepository) Update(ctx context.Context, recipe *domain.Recipe) (*domain.Recipe, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": recipe.ID}, recipe)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe.Clone(), nil
}

func (r *RecipeRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) AddComment(ctx context.Context, id int, c domain.Comment) error {
	return r.push(ctx, id, "comments", c)
}

func (r *RecipeRepository) AddPhoto(ctx context.Context, id int, ref string) error {
	return r.push(ctx, id, "photos", ref)
}

func (r *RecipeRepository) push(ctx context.Context, id int, field string, value any) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{field: value}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRecipeNotFound
	}
	return nil
}

func (r *RecipeRepository) IncrementLikes(ctx context.Context, id int) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"likes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var recipe domain.Recipe
	if err := res.Decode(&recipe); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, domain.ErrRecipeNotFound
		}
		return 0, err
	}
	return recipe.Likes, nil
}

// EnsureIndexes creates the indexes the driver relies on.
func (r *RecipeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
