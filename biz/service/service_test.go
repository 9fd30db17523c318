package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/pixeldock/pixeldock/biz/dal/db"
	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/session"
	"github.com/pixeldock/pixeldock/pkg/validator"

	"gorm.io/gorm"
)

// fakeGateway records orders instead of calling PayPal.
type fakeGateway struct {
	orders []GatewayOrderSpec
	fail   error
	nextID string
}

func (g *fakeGateway) CreateOrder(ctx context.Context, spec GatewayOrderSpec) (*GatewayOrder, error) {
	if g.fail != nil {
		return nil, g.fail
	}
	g.orders = append(g.orders, spec)
	id := g.nextID
	if id == "" {
		id = fmt.Sprintf("ORDER-%d", len(g.orders))
	}
	return &GatewayOrder{
		OrderID:      id,
		ApprovalLink: "https://paypal.example.com/approve/" + id,
	}, nil
}

// fakeStorage implements storage.Storage in memory.
type fakeStorage struct {
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) PutObject(ctx context.Context, key string, data io.Reader, contentType string, size int64) error {
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[key] = b
	return nil
}

func (f *fakeStorage) GetObject(ctx context.Context, key string) (io.ReadCloser, error) {
	b, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return io.NopCloser(strings.NewReader(string(b))), nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) ObjectExists(ctx context.Context, key string) (bool, error) {
	_, ok := f.objects[key]
	return ok, nil
}

func (f *fakeStorage) GenerateURL(ctx context.Context, key string, fileName string) (string, error) {
	return "https://cdn.example.com/" + key, nil
}

func (f *fakeStorage) PresignPut(ctx context.Context, key string, contentType string) (string, error) {
	return "https://upload.example.com/" + key, nil
}

func (f *fakeStorage) Type() string { return "fake" }

// newTestService wires a Service against an in-memory database with fake
// external collaborators.
func newTestService(t *testing.T) (*Service, *gorm.DB, *fakeGateway) {
	t.Helper()
	conn := db.SetupTestDB(t)
	t.Cleanup(func() { db.CleanupTestDB(t, conn) })

	gateway := &fakeGateway{}
	svc := NewService(Options{
		DB:      conn,
		Storage: newFakeStorage(),
		Gateway: gateway,
		Upload:  validator.NewUploadConfig(10<<20, []string{"image/png", "image/jpeg"}),
		Pricing: Pricing{DefaultPrice: 5.00, Currency: "USD"},
		AppURL:  "http://localhost:3000",
	})
	return svc, conn, gateway
}

func userSession(u *model.User) *session.Session {
	return &session.Session{User: session.User{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}}
}
