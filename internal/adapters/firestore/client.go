package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Clients bundles the platform handles the adapters need. It is built once
// by the composition root and passed down; nothing else initializes the SDK.
type Clients struct {
	App       *firebase.App
	Firestore *firestore.Client
	Auth      *auth.Client
}

// Connect initializes the Firebase app and derives the Firestore and Auth
// clients. With an empty credentials path the SDK falls back to application
// default credentials, which is the deployed configuration.
func Connect(ctx context.Context, projectID, credentialsFile string) (*Clients, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	var conf *firebase.Config
	if projectID != "" {
		conf = &firebase.Config{ProjectID: projectID}
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	store, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore client: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init auth client: %w", err)
	}
	return &Clients{App: app, Firestore: store, Auth: authClient}, nil
}

// Close releases the Firestore connection. The Auth client has no teardown.
func (c *Clients) Close() error {
	if c.Firestore == nil {
		return nil
	}
	return c.Firestore.Close()
}
