package service

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"

	"rental_booking/internal/model"
	"rental_booking/internal/repository"
	"rental_booking/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPropertyService_CreateProperty_WithUploads(t *testing.T) {
	repo := new(mockPropertyRepo)
	files := new(mockFileStore)
	svc := NewPropertyService(repo, files)
	ctx := context.Background()

	thumb := &multipart.FileHeader{Filename: "t.jpg"}
	g1 := &multipart.FileHeader{Filename: "g1.png"}
	files.On("Save", thumb).Return("/uploads/t.jpg", nil)
	files.On("Save", g1).Return("/uploads/g1.png", nil)
	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Property) bool {
		return p.UserID == 3 && p.Thumbnail != nil && *p.Thumbnail == "/uploads/t.jpg" &&
			len(p.Gallery) == 1 && p.Gallery[0] == "/uploads/g1.png" && p.Bedrooms == nil
	})).Run(func(args mock.Arguments) { args.Get(1).(*model.Property).ID = 10 }).Return(nil)

	p, err := svc.CreateProperty(ctx, 3, model.CreatePropertyRequest{Title: "Loft", PricePerNight: 80},
		PropertyUploads{Thumbnail: thumb, Gallery: []*multipart.FileHeader{g1}})

	require.NoError(t, err)
	assert.Equal(t, int64(10), p.ID)
	repo.AssertExpectations(t)
}

func TestPropertyService_CreateProperty_BodyReferences(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, new(mockFileStore))
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(p *model.Property) bool {
		return *p.Thumbnail == "https://cdn.example.com/t.jpg" && p.Gallery[0] == "https://cdn.example.com/g.jpg"
	})).Return(nil)

	_, err := svc.CreateProperty(ctx, 3, model.CreatePropertyRequest{
		Title:     "Loft",
		Thumbnail: strPtr("https://cdn.example.com/t.jpg"),
		Gallery:   []string{"https://cdn.example.com/g.jpg"},
	}, PropertyUploads{})
	require.NoError(t, err)
}

func TestPropertyService_CreateProperty_RepoFailureRemovesUploads(t *testing.T) {
	repo := new(mockPropertyRepo)
	files := new(mockFileStore)
	svc := NewPropertyService(repo, files)
	ctx := context.Background()

	thumb := &multipart.FileHeader{Filename: "t.jpg"}
	files.On("Save", thumb).Return("/uploads/t.jpg", nil)
	files.On("Remove", "/uploads/t.jpg").Return(nil)
	repo.On("Create", ctx, mock.Anything).Return(errors.New("db down"))

	_, err := svc.CreateProperty(ctx, 3, model.CreatePropertyRequest{Title: "Loft"}, PropertyUploads{Thumbnail: thumb})
	assert.Error(t, err)
	files.AssertCalled(t, "Remove", "/uploads/t.jpg")
}

func TestPropertyService_CreateProperty_InvalidUpload(t *testing.T) {
	repo := new(mockPropertyRepo)
	files := new(mockFileStore)
	svc := NewPropertyService(repo, files)

	thumb := &multipart.FileHeader{Filename: "t.exe"}
	files.On("Save", thumb).Return("", storage.ErrInvalidFileFormat)

	_, err := svc.CreateProperty(context.Background(), 3, model.CreatePropertyRequest{}, PropertyUploads{Thumbnail: thumb})
	assert.ErrorIs(t, err, storage.ErrInvalidFileFormat)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPropertyService_GetProperty_NotFound(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, nil)
	ctx := context.Background()

	repo.On("FindByID", ctx, int64(5)).Return(nil, nil)

	_, err := svc.GetProperty(ctx, 5)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestPropertyService_UpdateProperty(t *testing.T) {
	ctx := context.Background()
	title := "New title"

	t.Run("not found", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		svc := NewPropertyService(repo, nil)
		repo.On("FindByID", ctx, int64(5)).Return(nil, nil)

		_, err := svc.UpdateProperty(ctx, 3, 5, model.UpdatePropertyRequest{Title: &title}, PropertyUploads{})
		assert.ErrorIs(t, err, ErrPropertyNotFound)
	})

	t.Run("not owner", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		svc := NewPropertyService(repo, nil)
		repo.On("FindByID", ctx, int64(5)).Return(&model.Property{ID: 5, UserID: 99}, nil)

		_, err := svc.UpdateProperty(ctx, 3, 5, model.UpdatePropertyRequest{Title: &title}, PropertyUploads{})
		assert.ErrorIs(t, err, ErrForbidden)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("owner replaces thumbnail", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		files := new(mockFileStore)
		svc := NewPropertyService(repo, files)
		thumb := &multipart.FileHeader{Filename: "new.jpg"}

		repo.On("FindByID", ctx, int64(5)).Return(&model.Property{ID: 5, UserID: 3, Thumbnail: strPtr("/uploads/old.jpg")}, nil)
		files.On("Save", thumb).Return("/uploads/new.jpg", nil)
		repo.On("Update", ctx, int64(5), mock.MatchedBy(func(u *model.UpdatePropertyRequest) bool {
			return *u.Title == title && *u.Thumbnail == "/uploads/new.jpg" && u.PricePerNight == nil
		})).Return(&model.Property{ID: 5, UserID: 3, Title: title}, nil)
		files.On("Remove", "/uploads/old.jpg").Return(nil)

		p, err := svc.UpdateProperty(ctx, 3, 5, model.UpdatePropertyRequest{Title: &title}, PropertyUploads{Thumbnail: thumb})
		require.NoError(t, err)
		assert.Equal(t, title, p.Title)
		files.AssertExpectations(t)
	})
}

func TestPropertyService_DeleteProperty(t *testing.T) {
	ctx := context.Background()

	t.Run("not owner", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		svc := NewPropertyService(repo, nil)
		repo.On("FindByID", ctx, int64(5)).Return(&model.Property{ID: 5, UserID: 99}, nil)

		assert.ErrorIs(t, svc.DeleteProperty(ctx, 3, 5), ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("deleted concurrently", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		svc := NewPropertyService(repo, nil)
		repo.On("FindByID", ctx, int64(5)).Return(&model.Property{ID: 5, UserID: 3}, nil)
		repo.On("Delete", ctx, int64(5)).Return(repository.ErrNotFound)

		assert.ErrorIs(t, svc.DeleteProperty(ctx, 3, 5), ErrPropertyNotFound)
	})

	t.Run("owner", func(t *testing.T) {
		repo := new(mockPropertyRepo)
		files := new(mockFileStore)
		svc := NewPropertyService(repo, files)
		repo.On("FindByID", ctx, int64(5)).Return(&model.Property{ID: 5, UserID: 3, Gallery: []string{"/uploads/g.jpg"}}, nil)
		repo.On("Delete", ctx, int64(5)).Return(nil)
		files.On("Remove", "/uploads/g.jpg").Return(nil)

		assert.NoError(t, svc.DeleteProperty(ctx, 3, 5))
		files.AssertExpectations(t)
	})
}

func TestPropertyService_HostCountByMonth(t *testing.T) {
	repo := new(mockPropertyRepo)
	svc := NewPropertyService(repo, nil)
	ctx := context.Background()

	repo.On("CountByMonthForOwner", ctx, int64(3), 2024).Return(model.MonthlyCounts{0, 0, 2}, nil)

	got, err := svc.HostCountByMonth(ctx, 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got[2])
}
