package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"oneasy-portal/internal/auth"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const docScheme = "doc://"

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DocumentService stores uploaded files on disk under opaque doc:// references
// and hands out signed, time-limited links to them. A reference has the form
// doc://<uploader>/<id>/<name>, mirroring its location under dir.
type DocumentService struct {
	dir    string
	signer *auth.URLSigner
}

func NewDocumentService(dir string, signer *auth.URLSigner) *DocumentService {
	return &DocumentService{dir: dir, signer: signer}
}

// Store copies r to disk under the uploader and returns its reference.
func (s *DocumentService) Store(uploader bson.ObjectID, name string, r io.Reader) (string, error) {
	name = unsafeName.ReplaceAllString(filepath.Base(name), "_")
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	rel := path.Join(uploader.Hex(), uuid.NewString())
	dir := filepath.Join(s.dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create document dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("create document: %w", err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("write document: %w", err)
	}
	return docScheme + rel + "/" + name, nil
}

// Uploader parses a reference and returns who uploaded it. Anything that is
// not a well-formed doc:// reference is a bad request.
func (s *DocumentService) Uploader(ref string) (bson.ObjectID, error) {
	rel, ok := strings.CutPrefix(ref, docScheme)
	if !ok {
		return bson.NilObjectID, fmt.Errorf("%w: fileUrl must be a doc:// reference", ErrBadRequest)
	}
	parts := strings.Split(rel, "/")
	if len(parts) != 3 || parts[2] == "" || parts[2] == "." || parts[2] == ".." {
		return bson.NilObjectID, fmt.Errorf("%w: malformed document reference", ErrBadRequest)
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: malformed document reference", ErrBadRequest)
	}
	id, err := bson.ObjectIDFromHex(parts[0])
	if err != nil {
		return bson.NilObjectID, fmt.Errorf("%w: malformed document reference", ErrBadRequest)
	}
	return id, nil
}

// Sign returns a signed link for a reference the actor may read: staff read
// everything, a client reads what they uploaded or what attached reports
// is part of one of their registrations.
func (s *DocumentService) Sign(ctx context.Context, actor Actor, fileURL string, attached func(ctx context.Context, ref string) (bool, error)) (string, time.Time, error) {
	if strings.TrimSpace(fileURL) == "" {
		return "", time.Time{}, fmt.Errorf("%w: fileUrl is required", ErrBadRequest)
	}
	uploader, err := s.Uploader(fileURL)
	if err != nil {
		return "", time.Time{}, err
	}
	if !actor.IsStaff() && uploader != actor.UserID {
		ok := false
		if attached != nil {
			if ok, err = attached(ctx, fileURL); err != nil {
				return "", time.Time{}, err
			}
		}
		if !ok {
			return "", time.Time{}, ErrForbidden
		}
	}
	return s.signer.Sign(fileURL)
}

// Open verifies a signed-link token and resolves its reference to a local path.
func (s *DocumentService) Open(token string) (string, error) {
	ref, err := s.signer.Verify(token)
	if err != nil {
		return "", ErrForbidden
	}
	if _, err := s.Uploader(ref); err != nil {
		return "", ErrNotFound
	}
	rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(ref, docScheme)))
	if strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", ErrForbidden
	}
	p := filepath.Join(s.dir, rel)
	if _, err := os.Stat(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return p, nil
}
