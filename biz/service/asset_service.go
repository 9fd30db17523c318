package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pixeldock/pixeldock/biz/dal/model"
	"github.com/pixeldock/pixeldock/pkg/session"
	"github.com/pixeldock/pixeldock/pkg/validator"

	"gorm.io/gorm"
)

// UploadAssetInput captures the metadata for a new asset. The binary is
// uploaded separately through the signed-upload flow; only its resulting
// URLs arrive here.
type UploadAssetInput struct {
	Title        string
	Description  string
	CategoryID   uint
	FileURL      string
	ThumbnailURL string
}

// AssetView is the joined public shape of an asset. Nullable names reflect
// LEFT JOIN semantics: a deleted category or missing owner yields null, not
// an error.
type AssetView struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	FileURL      string  `json:"file_url"`
	ThumbnailURL string  `json:"thumbnail_url"`
	CategoryID   uint    `json:"category_id"`
	CategoryName *string `json:"category_name"`
	UserID       string  `json:"user_id"`
	UserName     *string `json:"user_name"`
	UserImage    string  `json:"user_image,omitempty"`
	IsApproved   string  `json:"is_approved"`
	Price        float64 `json:"price"`
	CreatedAt    string  `json:"created_at"`
}

// SignedUpload is the credential returned to a client about to upload a
// binary: the URL to PUT the bytes to and the URL the stored object will be
// served from.
type SignedUpload struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	ObjectKey string `json:"object_key"`
}

// AdminStats is the admin dashboard counters payload.
type AdminStats struct {
	UserCount  int64 `json:"user_count"`
	AssetCount int64 `json:"asset_count"`
}

// UploadAsset records a new asset owned by the caller. The asset starts
// pending and is invisible in the gallery until approved. Price is the
// configured default.
func (s *Service) UploadAsset(ctx context.Context, sess *session.Session, in UploadAssetInput) (*AssetView, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.CategoryID == 0 {
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	}
	if err := validator.ValidateURL(in.FileURL); err != nil {
		return nil, fmt.Errorf("%w: file url: %v", ErrValidation, err)
	}
	thumbnail := in.ThumbnailURL
	if thumbnail == "" {
		thumbnail = in.FileURL
	} else if err := validator.ValidateURL(thumbnail); err != nil {
		return nil, fmt.Errorf("%w: thumbnail url: %v", ErrValidation, err)
	}

	asset := &model.Asset{
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		FileURL:      in.FileURL,
		ThumbnailURL: thumbnail,
		CategoryID:   in.CategoryID,
		UserID:       user.ID,
		IsApproved:   model.ApprovalPending,
		Price:        s.pricing.DefaultPrice,
	}
	if err := s.logic.assetDAO.Create(ctx, s.logic.db, asset); err != nil {
		return nil, err
	}

	s.views.Invalidate(ctx, "dashboard/assets")
	return s.joinedAssetView(ctx, asset)
}

// ListUserAssets returns the caller's own assets in upload order, every
// approval state included.
func (s *Service) ListUserAssets(ctx context.Context, sess *session.Session) ([]AssetView, error) {
	user, err := session.Require(sess, "")
	if err != nil {
		return nil, err
	}

	assets, err := s.logic.assetDAO.ListByUser(ctx, s.logic.db, user.ID)
	if err != nil {
		return nil, err
	}
	return s.joinedAssetViews(ctx, assets)
}

// ListPublicAssets returns approved assets for the gallery, optionally
// filtered to one category.
func (s *Service) ListPublicAssets(ctx context.Context, categoryID *uint) ([]AssetView, error) {
	assets, err := s.logic.assetDAO.ListApproved(ctx, s.logic.db, categoryID)
	if err != nil {
		return nil, err
	}
	return s.joinedAssetViews(ctx, assets)
}

// GetAssetByID returns the joined detail view of one asset.
func (s *Service) GetAssetByID(ctx context.Context, id string) (*AssetView, error) {
	asset, err := s.logic.assetDAO.GetByID(ctx, s.logic.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: asset %s", ErrNotFound, id)
		}
		return nil, err
	}
	return s.joinedAssetView(ctx, asset)
}

// ApproveAsset marks an asset approved. Admin only, idempotent.
func (s *Service) ApproveAsset(ctx context.Context, sess *session.Session, id string) error {
	return s.setApproval(ctx, sess, id, model.ApprovalApproved)
}

// RejectAsset marks an asset rejected. Admin only, idempotent.
func (s *Service) RejectAsset(ctx context.Context, sess *session.Session, id string) error {
	return s.setApproval(ctx, sess, id, model.ApprovalRejected)
}

func (s *Service) setApproval(ctx context.Context, sess *session.Session, id string, state string) error {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return err
	}
	if err := s.logic.assetDAO.SetApproval(ctx, s.logic.db, id, state); err != nil {
		return err
	}
	s.views.Invalidate(ctx, "admin/asset-approval")
	return nil
}

// ListPendingAssets returns all assets awaiting review with owner names.
// Admin only.
func (s *Service) ListPendingAssets(ctx context.Context, sess *session.Session) ([]AssetView, error) {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return nil, err
	}
	assets, err := s.logic.assetDAO.ListPending(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	return s.joinedAssetViews(ctx, assets)
}

// SignUpload validates the declared file and issues a presigned PUT
// credential for it. The object key namespaces the file under a fresh UUID
// so names never collide.
func (s *Service) SignUpload(ctx context.Context, sess *session.Session, fileName, contentType string, size int64) (*SignedUpload, error) {
	if _, err := session.Require(sess, ""); err != nil {
		return nil, err
	}

	base := path.Base(strings.TrimSpace(fileName))
	if base == "" || base == "." || base == "/" {
		return nil, fmt.Errorf("%w: file name is required", ErrValidation)
	}
	if err := s.upload.ValidateMimeType(contentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.upload.ValidateFileSize(size); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	key := uuid.NewString() + "/" + base
	uploadURL, err := s.store.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, err
	}
	objectURL, err := s.store.GenerateURL(ctx, key, base)
	if err != nil {
		return nil, err
	}
	return &SignedUpload{UploadURL: uploadURL, ObjectURL: objectURL, ObjectKey: key}, nil
}

// GetAdminStats returns user and asset totals. Admin only.
func (s *Service) GetAdminStats(ctx context.Context, sess *session.Session) (*AdminStats, error) {
	if _, err := session.Require(sess, session.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.logic.userDAO.Count(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	assets, err := s.logic.assetDAO.Count(ctx, s.logic.db)
	if err != nil {
		return nil, err
	}
	return &AdminStats{UserCount: users, AssetCount: assets}, nil
}

func (s *Service) joinedAssetView(ctx context.Context, asset *model.Asset) (*AssetView, error) {
	views, err := s.joinedAssetViews(ctx, []model.Asset{*asset})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// joinedAssetViews zips assets with their category and owner names.
func (s *Service) joinedAssetViews(ctx context.Context, assets []model.Asset) ([]AssetView, error) {
	categoryNames, err := s.logic.categoryNamesFor(ctx, assets)
	if err != nil {
		return nil, err
	}
	users, err := s.logic.usersFor(ctx, assets)
	if err != nil {
		return nil, err
	}

	views := make([]AssetView, 0, len(assets))
	for i := range assets {
		a := &assets[i]
		v := AssetView{
			ID:           a.ID,
			Title:        a.Title,
			Description:  a.Description,
			FileURL:      a.FileURL,
			ThumbnailURL: a.ThumbnailURL,
			CategoryID:   a.CategoryID,
			UserID:       a.UserID,
			IsApproved:   a.IsApproved,
			Price:        a.Price,
			CreatedAt:    a.CreatedAt.UTC().Format(time.RFC3339),
		}
		if name, ok := categoryNames[a.CategoryID]; ok {
			v.CategoryName = &name
		}
		if owner, ok := users[a.UserID]; ok {
			name := owner.Name
			v.UserName = &name
			v.UserImage = owner.Image
		}
		views = append(views, v)
	}
	return views, nil
}
