package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"postarchive/src/domain"
	"postarchive/src/domain/entities"
)

const DataFileName = "data.json"

// ArchiveFileRepository lê o export (data.json) e grava o documento
// gerado no mesmo diretório.
type ArchiveFileRepository struct{}

func NewArchiveFileRepository() *ArchiveFileRepository {
	return &ArchiveFileRepository{}
}

func (r *ArchiveFileRepository) LoadPosts(dataDir string) ([]entities.Post, error) {
	path := filepath.Join(dataDir, DataFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("ArchiveFileRepository.LoadPosts - %s: %w", path, domain.ErrArchiveNotFound)
		}
		return nil, fmt.Errorf("ArchiveFileRepository.LoadPosts - failed to read %s: %w", path, err)
	}

	var posts []entities.Post
	if err := json.Unmarshal(content, &posts); err != nil {
		return nil, fmt.Errorf("ArchiveFileRepository.LoadPosts - failed to decode %s: %w", path, err)
	}

	return posts, nil
}

// SaveDocument grava o documento e retorna o caminho absoluto do arquivo.
func (r *ArchiveFileRepository) SaveDocument(dataDir string, fileName string, document string) (string, error) {
	path := filepath.Join(dataDir, fileName)

	if err := os.WriteFile(path, []byte(document), 0644); err != nil {
		return "", fmt.Errorf("ArchiveFileRepository.SaveDocument - failed to write %s: %w", path, err)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return absPath, nil
}
