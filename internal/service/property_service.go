package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"

	"rental_booking/internal/model"
	"rental_booking/internal/repository"
	"rental_booking/internal/storage"
)

// PropertyUploads carries image files sent with a create or update request
type PropertyUploads struct {
	Thumbnail *multipart.FileHeader
	Gallery   []*multipart.FileHeader
}

// PropertyService defines operations for listings
type PropertyService interface {
	CreateProperty(ctx context.Context, ownerID int64, req model.CreatePropertyRequest, files PropertyUploads) (*model.Property, error)
	GetProperty(ctx context.Context, id int64) (*model.Property, error)
	GetAllProperties(ctx context.Context) ([]model.Property, error)
	GetMyProperties(ctx context.Context, ownerID int64) ([]model.Property, error)
	UpdateProperty(ctx context.Context, callerID, id int64, req model.UpdatePropertyRequest, files PropertyUploads) (*model.Property, error)
	DeleteProperty(ctx context.Context, callerID, id int64) error
	HostCountByMonth(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error)
	CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error)
}

type propertyService struct {
	repo  repository.PropertyRepository
	files storage.FileStore
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(repo repository.PropertyRepository, files storage.FileStore) PropertyService {
	return &propertyService{repo: repo, files: files}
}

func (s *propertyService) CreateProperty(ctx context.Context, ownerID int64, req model.CreatePropertyRequest, files PropertyUploads) (*model.Property, error) {
	thumb, gallery, saved, err := s.saveUploads(files)
	if err != nil {
		return nil, err
	}
	if thumb == nil {
		thumb = req.Thumbnail
	}
	if gallery == nil {
		gallery = req.Gallery
	}

	p := &model.Property{
		UserID:        ownerID,
		Title:         req.Title,
		Location:      req.Location,
		Description:   req.Description,
		PricePerNight: req.PricePerNight,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Size:          req.Size,
		Thumbnail:     thumb,
		Gallery:       gallery,
		PetFriendly:   req.PetFriendly,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.removeFiles(ctx, saved)
		return nil, fmt.Errorf("failed to create property in repo: %w", err)
	}
	p.Bookings = []model.Booking{}
	return p, nil
}

func (s *propertyService) GetProperty(ctx context.Context, id int64) (*model.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	if p == nil {
		return nil, ErrPropertyNotFound
	}
	return p, nil
}

func (s *propertyService) GetAllProperties(ctx context.Context) ([]model.Property, error) {
	props, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return props, nil
}

func (s *propertyService) GetMyProperties(ctx context.Context, ownerID int64) ([]model.Property, error) {
	props, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list host properties: %w", err)
	}
	return props, nil
}

// UpdateProperty applies a partial update; only the owner may change a listing
func (s *propertyService) UpdateProperty(ctx context.Context, callerID, id int64, req model.UpdatePropertyRequest, files PropertyUploads) (*model.Property, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find property for update: %w", err)
	}
	if existing == nil {
		return nil, ErrPropertyNotFound
	}
	if existing.UserID != callerID {
		return nil, ErrForbidden
	}

	thumb, gallery, saved, err := s.saveUploads(files)
	if err != nil {
		return nil, err
	}
	if thumb != nil {
		req.Thumbnail = thumb
	}
	if gallery != nil {
		req.Gallery = gallery
	}

	updated, err := s.repo.Update(ctx, id, &req)
	if err != nil {
		s.removeFiles(ctx, saved)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, fmt.Errorf("failed to update property in repo: %w", err)
	}

	var stale []string
	if req.Thumbnail != nil && existing.Thumbnail != nil && *existing.Thumbnail != *req.Thumbnail {
		stale = append(stale, *existing.Thumbnail)
	}
	if req.Gallery != nil {
		stale = append(stale, missingFrom(existing.Gallery, req.Gallery)...)
	}
	s.removeFiles(ctx, stale)

	updated.User = existing.User
	updated.Bookings = existing.Bookings
	return updated, nil
}

// DeleteProperty removes a listing owned by the caller; bookings cascade
func (s *propertyService) DeleteProperty(ctx context.Context, callerID, id int64) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to find property for deletion: %w", err)
	}
	if existing == nil {
		return ErrPropertyNotFound
	}
	if existing.UserID != callerID {
		return ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPropertyNotFound
		}
		return fmt.Errorf("failed to delete property in repo: %w", err)
	}

	var stale []string
	if existing.Thumbnail != nil {
		stale = append(stale, *existing.Thumbnail)
	}
	s.removeFiles(ctx, append(stale, existing.Gallery...))
	return nil
}

func (s *propertyService) HostCountByMonth(ctx context.Context, ownerID int64, year int) (model.MonthlyCounts, error) {
	counts, err := s.repo.CountByMonthForOwner(ctx, ownerID, year)
	if err != nil {
		return counts, fmt.Errorf("failed to count host properties by month: %w", err)
	}
	return counts, nil
}

func (s *propertyService) CountByMonth(ctx context.Context, year int) (model.MonthlyCounts, error) {
	counts, err := s.repo.CountByMonth(ctx, year)
	if err != nil {
		return counts, fmt.Errorf("failed to count properties by month: %w", err)
	}
	return counts, nil
}

// saveUploads stores the files and returns their public paths. saved lists every
// stored path so the caller can undo them when the database write fails.
func (s *propertyService) saveUploads(files PropertyUploads) (thumb *string, gallery []string, saved []string, err error) {
	if s.files == nil {
		return nil, nil, nil, nil
	}
	if files.Thumbnail != nil {
		p, err := s.files.Save(files.Thumbnail)
		if err != nil {
			return nil, nil, nil, err
		}
		thumb = &p
		saved = append(saved, p)
	}
	for _, fh := range files.Gallery {
		p, err := s.files.Save(fh)
		if err != nil {
			s.removeFiles(context.Background(), saved)
			return nil, nil, nil, err
		}
		gallery = append(gallery, p)
		saved = append(saved, p)
	}
	return thumb, gallery, saved, nil
}

func (s *propertyService) removeFiles(ctx context.Context, paths []string) {
	if s.files == nil {
		return
	}
	for _, p := range paths {
		if err := s.files.Remove(p); err != nil {
			slog.WarnContext(ctx, "failed to remove upload", "path", p, "error", err)
		}
	}
}

func missingFrom(old, current []string) []string {
	keep := make(map[string]bool, len(current))
	for _, c := range current {
		keep[c] = true
	}
	var out []string
	for _, o := range old {
		if !keep[o] {
			out = append(out, o)
		}
	}
	return out
}
