package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"trackup/internal/model"
)

type WriteOptions struct {
	Overwrite bool
	RenderOptions
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteTeam writes <toDir>/teams/<slug>.md.
func WriteTeam(team model.Team, details map[string]model.MemberDetail, toDir string, opt WriteOptions) (WriteResult, error) {
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	md, err := RenderTeamMarkdown(team, details, opt.RenderOptions)
	if err != nil {
		return WriteResult{}, err
	}

	outDir := filepath.Join(toDir, "teams")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return WriteResult{}, err
	}
	outPath := filepath.Join(outDir, Slug(team.Name)+".md")
	if err := writeFile(outPath, []byte(md), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{outPath}}, nil
}

// Slug lowercases name and replaces runs of anything but letters and digits
// with a single dash.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "team"
	}
	return s
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
