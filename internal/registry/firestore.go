package registry

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"

	"github.com/stackgen-cli/stackgen/internal/domain"
)

const presetCollection = "presets"

// FirestoreRegistry shares custom presets through a Firestore
// collection. Credentials come from Application Default Credentials
// (GOOGLE_APPLICATION_CREDENTIALS or ambient gcloud auth).
type FirestoreRegistry struct {
	client *firestore.Client
}

// NewFirestore connects to the given Firebase project.
func NewFirestore(ctx context.Context, projectID string) (*FirestoreRegistry, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID})
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return &FirestoreRegistry{client: client}, nil
}

// Publish upserts a preset document keyed by its lowercased name.
func (r *FirestoreRegistry) Publish(ctx context.Context, p domain.CustomPreset) error {
	key := strings.ToLower(p.Name)
	if _, err := r.client.Collection(presetCollection).Doc(key).Set(ctx, p); err != nil {
		return fmt.Errorf("publish preset %q: %w", p.Name, err)
	}
	return nil
}

// Fetch retrieves one shared preset by name.
func (r *FirestoreRegistry) Fetch(ctx context.Context, name string) (*domain.CustomPreset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	doc, err := r.client.Collection(presetCollection).Doc(key).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch preset %q: %w", name, err)
	}
	var p domain.CustomPreset
	if err := doc.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode preset %q: %w", name, err)
	}
	return &p, nil
}

// List returns every shared preset in the collection.
func (r *FirestoreRegistry) List(ctx context.Context) ([]domain.CustomPreset, error) {
	var out []domain.CustomPreset
	it := r.client.Collection(presetCollection).Documents(ctx)
	defer it.Stop()
	for {
		doc, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list presets: %w", err)
		}
		var p domain.CustomPreset
		if err := doc.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode preset %q: %w", doc.Ref.ID, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Close releases the underlying client.
func (r *FirestoreRegistry) Close() error {
	return r.client.Close()
}
