package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/matchers"
)

// Типы документов заявки оператора.
const (
	DocTypeLicense   = "license"
	DocTypeInsurance = "insurance"
	DocTypeTax       = "tax"
)

// DocumentStorage отвечает за файловое хранилище документов операторов.
// Принимаются только PDF, JPEG и PNG; тип определяется по содержимому,
// а не по расширению.
type DocumentStorage struct {
	rootPath       string
	maxUploadBytes int64
}

// NewDocumentStorage создаёт файловое хранилище.
func NewDocumentStorage(rootPath string, maxUploadMB int64) (*DocumentStorage, error) {
	if err := os.MkdirAll(rootPath, 0o755); err != nil {
		return nil, fmt.Errorf("storage: не удалось создать каталог %s: %w", rootPath, err)
	}

	return &DocumentStorage{
		rootPath:       rootPath,
		maxUploadBytes: maxUploadMB * 1024 * 1024,
	}, nil
}

// ValidDocType сообщает, известен ли тип документа.
func ValidDocType(docType string) bool {
	switch docType {
	case DocTypeLicense, DocTypeInsurance, DocTypeTax:
		return true
	}
	return false
}

// Save проверяет содержимое и сохраняет документ заявки.
// Возвращает относительный путь и размер.
func (s *DocumentStorage) Save(ctx context.Context, providerID uuid.UUID, docType, originalName string, r io.Reader) (string, int64, error) {
	if err := ctx.Err(); err != nil {
		return "", 0, err
	}
	if !ValidDocType(docType) {
		return "", 0, fmt.Errorf("storage: неизвестный тип документа %q", docType)
	}

	// Сниффинг по первым байтам, затем склейка обратно с остатком потока.
	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", 0, fmt.Errorf("storage: ошибка чтения файла: %w", err)
	}
	head = head[:n]

	kind, err := filetype.Match(head)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось определить тип файла: %w", err)
	}
	switch kind {
	case matchers.TypePdf, matchers.TypeJpeg, matchers.TypePng:
	default:
		return "", 0, fmt.Errorf("storage: допускаются только PDF, JPEG и PNG")
	}

	safeName := sanitizeFilename(originalName)
	fileName := fmt.Sprintf("%s_%s_%d%s", docType, providerID.String(), time.Now().UnixNano(), filepath.Ext(safeName))

	providerDir := filepath.Join(s.rootPath, providerID.String())
	if err := os.MkdirAll(providerDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать каталог заявки: %w", err)
	}

	targetPath := filepath.Join(providerDir, fileName)
	tempPath := targetPath + ".tmp"

	f, err := os.Create(tempPath)
	if err != nil {
		return "", 0, fmt.Errorf("storage: не удалось создать файл: %w", err)
	}
	defer f.Close()

	full := io.MultiReader(bytes.NewReader(head), r)
	limitedReader := io.LimitedReader{R: full, N: s.maxUploadBytes + 1}
	written, err := io.Copy(f, &limitedReader)
	if err != nil {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: ошибка записи файла: %w", err)
	}

	if written > s.maxUploadBytes {
		_ = os.Remove(tempPath)
		return "", 0, fmt.Errorf("storage: размер файла превышает лимит %d байт", s.maxUploadBytes)
	}

	if err := f.Close(); err != nil {
		return "", 0, fmt.Errorf("storage: ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tempPath, targetPath); err != nil {
		return "", 0, fmt.Errorf("storage: не удалось переименовать файл: %w", err)
	}

	relative := filepath.Join(providerID.String(), fileName)
	return relative, written, nil
}

// Delete удаляет документ из хранилища.
func (s *DocumentStorage) Delete(ctx context.Context, relativePath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.rootPath, relativePath)
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: не удалось удалить файл: %w", err)
	}
	return nil
}

// sanitizeFilename удаляет потенциально опасные символы.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		name = "document"
	}
	return name
}
