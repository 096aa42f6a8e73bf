package editor

import (
	"context"
	"io"
	"sync"

	"go-couture-api/internal/product"
	"go-couture-api/internal/storage"

	"go.uber.org/zap"
)

type Mode string

const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

type State string

const (
	StateEditing    State = "editing"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
)

//go:generate mockgen -source=editor.go -destination=../mock/editor/editor_mock.go -package=mock
type Writer interface {
	Create(ctx context.Context, in product.Input) (product.Product, error)
	Update(ctx context.Context, id string, in product.Input) (product.Product, error)
}

type Uploader interface {
	UploadImage(ctx context.Context, f File) (string, error)
}

// File is one image picked for upload.
type File struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	Name  string
	URL   string
	Error error
}

// Editor drives one product form from editing to a saved product.
type Editor struct {
	mu       sync.Mutex
	mode     Mode
	id       string
	draft    Draft
	state    State
	lastErr  error
	saved    product.Product
	writer   Writer
	uploader Uploader
	logger   *zap.Logger
}

// NewCreate opens an empty form.
func NewCreate(w Writer, u Uploader, logger ...*zap.Logger) *Editor {
	return newEditor(ModeCreate, "", NewDraft(), w, u, logger)
}

// NewEdit opens a form seeded with p.
func NewEdit(p product.Product, w Writer, u Uploader, logger ...*zap.Logger) *Editor {
	return newEditor(ModeEdit, p.ID, DraftFrom(p), w, u, logger)
}

func newEditor(mode Mode, id string, d Draft, w Writer, u Uploader, logger []*zap.Logger) *Editor {
	l := zap.L().Named("editor")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("editor")
	}
	return &Editor{
		mode:     mode,
		id:       id,
		draft:    d,
		state:    StateEditing,
		writer:   w,
		uploader: u,
		logger:   l,
	}
}

func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastError is the reason the previous submission was rejected, if any.
func (e *Editor) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Draft returns a copy of the current form values.
func (e *Editor) Draft() Draft {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.draft.clone()
}

// Edit applies fn to the draft. It fails while a submission is running.
func (e *Editor) Edit(fn func(d *Draft)) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateEditing && e.state != StateSucceeded {
		return ErrNotEditing
	}
	fn(&e.draft)
	e.state = StateEditing
	return nil
}

func (e *Editor) ToggleSize(size string) error {
	return e.Edit(func(d *Draft) { d.Sizes = toggle(d.Sizes, size) })
}

func (e *Editor) ToggleColor(color string) error {
	return e.Edit(func(d *Draft) { d.Colors = toggle(d.Colors, color) })
}

// RemoveImage drops the image at i. Index 0 is the cover.
func (e *Editor) RemoveImage(i int) error {
	var err error
	editErr := e.Edit(func(d *Draft) {
		if i < 0 || i >= len(d.Images) {
			err = ErrImageIndex
			return
		}
		d.Images = append(d.Images[:i:i], d.Images[i+1:]...)
	})
	if editErr != nil {
		return editErr
	}
	return err
}

// AddImages validates and uploads each file on its own; a rejected or failed
// file leaves the others untouched. Uploaded URLs are appended in order.
func (e *Editor) AddImages(ctx context.Context, files []File) []UploadResult {
	results := make([]UploadResult, len(files))

	for i, f := range files {
		results[i].Name = f.Name

		if err := storage.ValidateImage(f.ContentType, f.Size); err != nil {
			results[i].Error = err
			continue
		}

		e.mu.Lock()
		full := len(e.draft.Images) >= storage.MaxImagesPerProduct
		e.mu.Unlock()
		if full {
			results[i].Error = storage.ErrTooManyImages
			continue
		}

		url, err := e.uploader.UploadImage(ctx, f)
		if err != nil {
			e.logger.Error("error uploading image", zap.String("file", f.Name), zap.Error(err))
			results[i].Error = storage.ErrUploadFailed.Wrap(err)
			continue
		}

		e.mu.Lock()
		if len(e.draft.Images) >= storage.MaxImagesPerProduct {
			e.mu.Unlock()
			results[i].Error = storage.ErrTooManyImages
			continue
		}
		e.draft.Images = append(e.draft.Images, url)
		e.mu.Unlock()
		results[i].URL = url
	}
	return results
}

// Submit validates the draft and writes it. On any failure the draft is
// kept as is and the editor returns to editing with LastError set.
func (e *Editor) Submit(ctx context.Context) (product.Product, error) {
	e.mu.Lock()
	if e.state == StateValidating || e.state == StateSubmitting {
		e.mu.Unlock()
		return product.Product{}, ErrSubmitInProgress
	}
	e.state = StateValidating
	draft := e.draft.clone()
	mode, id := e.mode, e.id
	e.mu.Unlock()

	in, err := draft.Input()
	if err != nil {
		return product.Product{}, e.fail(err)
	}

	e.mu.Lock()
	e.state = StateSubmitting
	e.mu.Unlock()

	var saved product.Product
	if mode == ModeCreate {
		saved, err = e.writer.Create(ctx, in)
	} else {
		saved, err = e.writer.Update(ctx, id, in)
	}
	if err != nil {
		e.logger.Error("error saving product", zap.String("mode", string(mode)), zap.Error(err))
		return product.Product{}, e.fail(err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateSucceeded
	e.lastErr = nil
	e.saved = saved
	if mode == ModeCreate {
		// further submits update the product that was just created
		e.mode = ModeEdit
		e.id = saved.ID
	}
	return saved, nil
}

func (e *Editor) fail(err error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = StateEditing
	e.lastErr = err
	return err
}

// Saved is the product returned by the last successful submission.
func (e *Editor) Saved() product.Product {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saved
}
