package editor_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"go-couture-api/internal/editor"
	editorMock "go-couture-api/internal/mock/editor"
	"go-couture-api/internal/product"
	producterrors "go-couture-api/internal/product/errors"
	"go-couture-api/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validDraft(d *editor.Draft) {
	d.Name = "Red Velvet Gown"
	d.Description = "Floor length"
	d.Price = "85000"
	d.Category = product.CategoryGowns
	d.Images = []string{"https://cdn/a.jpg"}
	d.Sizes = []string{"M"}
	d.Colors = []string{"Red"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(d *editor.Draft)
		wantErr error
	}{
		{"valid", func(d *editor.Draft) {}, nil},
		{"missing name", func(d *editor.Draft) { d.Name = " " }, producterrors.ErrMissingFields},
		{"missing price", func(d *editor.Draft) { d.Price = "" }, producterrors.ErrMissingFields},
		{"bad price", func(d *editor.Draft) { d.Price = "abc" }, producterrors.ErrInvalidPrice},
		{"negative price", func(d *editor.Draft) { d.Price = "-1" }, producterrors.ErrInvalidPrice},
		{"no images", func(d *editor.Draft) { d.Images = nil }, producterrors.ErrImageRequired},
		{"no sizes", func(d *editor.Draft) { d.Sizes = nil }, producterrors.ErrSizeRequired},
		{"no colors", func(d *editor.Draft) { d.Colors = nil }, producterrors.ErrColorRequired},
		{"first failure wins", func(d *editor.Draft) { d.Name = ""; d.Images = nil }, producterrors.ErrMissingFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := editor.NewDraft()
			validDraft(&d)
			tt.mutate(&d)

			err := editor.Validate(d)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewDraftDefaults(t *testing.T) {
	d := editor.NewDraft()
	assert.Equal(t, product.CategoryDresses, d.Category)
	assert.True(t, d.InStock)
	assert.False(t, d.IsFeatured)
}

func TestEditor_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("missing image issues no write and keeps the form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := editorMock.NewMockWriter(ctrl)
		uploader := editorMock.NewMockUploader(ctrl)

		e := editor.NewCreate(writer, uploader)
		require.NoError(t, e.Edit(func(d *editor.Draft) {
			validDraft(d)
			d.Images = nil
		}))
		before := e.Draft()

		_, err := e.Submit(ctx)

		assert.ErrorIs(t, err, producterrors.ErrImageRequired)
		assert.Equal(t, editor.StateEditing, e.State())
		assert.ErrorIs(t, e.LastError(), producterrors.ErrImageRequired)
		assert.Equal(t, before, e.Draft())
	})

	t.Run("create then edit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := editorMock.NewMockWriter(ctrl)
		uploader := editorMock.NewMockUploader(ctrl)

		writer.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in product.Input) (product.Product, error) {
				assert.Equal(t, 85000.0, in.Price)
				assert.Equal(t, product.CategoryGowns, in.Category)
				return product.Product{ID: "p1", Name: in.Name}, nil
			})
		writer.EXPECT().
			Update(gomock.Any(), "p1", gomock.Any()).
			Return(product.Product{ID: "p1"}, nil)

		e := editor.NewCreate(writer, uploader)
		require.NoError(t, e.Edit(validDraft))

		saved, err := e.Submit(ctx)
		require.NoError(t, err)
		assert.Equal(t, "p1", saved.ID)
		assert.Equal(t, editor.StateSucceeded, e.State())
		assert.Equal(t, editor.ModeEdit, e.Mode())

		_, err = e.Submit(ctx)
		require.NoError(t, err)
	})

	t.Run("write failure keeps the form", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := editorMock.NewMockWriter(ctrl)
		uploader := editorMock.NewMockUploader(ctrl)

		writer.EXPECT().
			Update(gomock.Any(), "p9", gomock.Any()).
			Return(product.Product{}, producterrors.ErrWriteFailed)

		existing := product.Product{
			ID: "p9", Name: "Ankara Set", Description: "Two piece", Price: 42000,
			Category: product.CategorySeparates, Images: []string{"u"}, Sizes: []string{"S"}, Colors: []string{"Multi"},
		}
		e := editor.NewEdit(existing, writer, uploader)
		before := e.Draft()
		assert.Equal(t, "42000", before.Price)

		_, err := e.Submit(ctx)

		assert.ErrorIs(t, err, producterrors.ErrWriteFailed)
		assert.Equal(t, editor.StateEditing, e.State())
		assert.Equal(t, before, e.Draft())
	})

	t.Run("concurrent submit is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		writer := editorMock.NewMockWriter(ctrl)
		uploader := editorMock.NewMockUploader(ctrl)

		started := make(chan struct{})
		release := make(chan struct{})
		writer.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, product.Input) (product.Product, error) {
				close(started)
				<-release
				return product.Product{ID: "p1"}, nil
			})

		e := editor.NewCreate(writer, uploader)
		require.NoError(t, e.Edit(validDraft))

		done := make(chan error)
		go func() {
			_, err := e.Submit(ctx)
			done <- err
		}()
		<-started

		_, err := e.Submit(ctx)
		assert.ErrorIs(t, err, editor.ErrSubmitInProgress)
		assert.ErrorIs(t, e.ToggleSize("L"), editor.ErrNotEditing)

		close(release)
		assert.NoError(t, <-done)
	})
}

func TestEditor_Toggles(t *testing.T) {
	ctrl := gomock.NewController(t)
	e := editor.NewCreate(editorMock.NewMockWriter(ctrl), editorMock.NewMockUploader(ctrl))

	require.NoError(t, e.ToggleSize("M"))
	require.NoError(t, e.ToggleSize("L"))
	require.NoError(t, e.ToggleSize("M"))
	require.NoError(t, e.ToggleColor("Gold"))

	d := e.Draft()
	assert.Equal(t, []string{"L"}, d.Sizes)
	assert.Equal(t, []string{"Gold"}, d.Colors)
}

func TestEditor_Images(t *testing.T) {
	ctx := context.Background()

	t.Run("per-file results", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uploader := editorMock.NewMockUploader(ctrl)

		uploader.EXPECT().
			UploadImage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, f editor.File) (string, error) {
				if f.Name == "broken.png" {
					return "", errors.New("network")
				}
				return "https://cdn/" + f.Name, nil
			}).
			Times(2)

		e := editor.NewCreate(editorMock.NewMockWriter(ctrl), uploader)
		results := e.AddImages(ctx, []editor.File{
			{Name: "front.jpg", ContentType: "image/jpeg", Size: 10, Body: bytes.NewReader(nil)},
			{Name: "doc.pdf", ContentType: "application/pdf", Size: 10},
			{Name: "huge.jpg", ContentType: "image/jpeg", Size: storage.MaxImageSize + 1},
			{Name: "broken.png", ContentType: "image/png", Size: 10},
		})

		require.Len(t, results, 4)
		assert.Equal(t, "https://cdn/front.jpg", results[0].URL)
		assert.ErrorIs(t, results[1].Error, storage.ErrNotImage)
		assert.ErrorIs(t, results[2].Error, storage.ErrImageTooLarge)
		assert.ErrorIs(t, results[3].Error, storage.ErrUploadFailed)
		assert.Equal(t, []string{"https://cdn/front.jpg"}, e.Draft().Images)
	})

	t.Run("limit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		uploader := editorMock.NewMockUploader(ctrl)

		existing := product.Product{ID: "p1", Images: []string{"1", "2", "3", "4"}}
		e := editor.NewEdit(existing, editorMock.NewMockWriter(ctrl), uploader)

		uploader.EXPECT().UploadImage(gomock.Any(), gomock.Any()).Return("5", nil)

		results := e.AddImages(ctx, []editor.File{
			{Name: "a.jpg", ContentType: "image/jpeg", Size: 1},
			{Name: "b.jpg", ContentType: "image/jpeg", Size: 1},
		})
		assert.NoError(t, results[0].Error)
		assert.ErrorIs(t, results[1].Error, storage.ErrTooManyImages)
		assert.Len(t, e.Draft().Images, storage.MaxImagesPerProduct)
	})

	t.Run("remove", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		existing := product.Product{ID: "p1", Images: []string{"cover", "side", "back"}}
		e := editor.NewEdit(existing, editorMock.NewMockWriter(ctrl), editorMock.NewMockUploader(ctrl))

		require.NoError(t, e.RemoveImage(0))
		assert.Equal(t, []string{"side", "back"}, e.Draft().Images)
		assert.ErrorIs(t, e.RemoveImage(5), editor.ErrImageIndex)
	})
}
