package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed pool.txt descriptions.yaml sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// PoolList returns the built-in image filenames.
func PoolList() ([]string, error) {
	return readLines("pool.txt")
}

// Descriptions returns the raw built-in description file.
func Descriptions() ([]byte, error) {
	return FS.ReadFile("descriptions.yaml")
}

// Migrations exposes the sql directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
