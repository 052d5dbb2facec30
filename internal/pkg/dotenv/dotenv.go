package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// DefaultFiles порядок важен: значения из первого файла не перетираются следующими.
var DefaultFiles = []string{".env.local", ".env"}

// Load подгружает существующие файлы из списка и возвращает их имена.
// Переменные, уже заданные в окружении, не перезаписываются.
func Load(files ...string) ([]string, error) {
	loaded := make([]string, 0, len(files))
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("stat %s: %w", file, err)
		}

		if err := godotenv.Load(file); err != nil {
			return loaded, fmt.Errorf("load %s: %w", file, err)
		}
		loaded = append(loaded, file)
	}
	return loaded, nil
}
