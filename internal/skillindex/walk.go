package skillindex

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/skrillsdev/skrills/internal/frontmatter"
	"github.com/skrillsdev/skrills/internal/skillsource"
	"github.com/skrillsdev/skrills/internal/skrillserr"
)

// Walk traverses root's "skills" directory (filesystem layout)
// and returns one SkillMeta per discovered file. Unreadable files and
// symlinks that escape the root are skipped without a record; a frontmatter
// parse failure is collected as a diagnostic on the record; only
// directory-level read failures are returned as an error.
func Walk(root Root) ([]SkillMeta, error) {
	skillsDir := filepath.Join(root.Dir, "skills")

	canonicalRoot, err := filepath.EvalSymlinks(skillsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, skrillserr.DiscoveryIO(skillsDir, err)
	}

	visited := map[string]bool{}
	var metas []SkillMeta

	var walkDir func(dir string) error
	walkDir = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			if os.IsPermission(err) {
				return skrillserr.New(skrillserr.CodePermissionDenied, "permission denied reading "+dir, "")
			}
			return skrillserr.DiscoveryIO(dir, err)
		}

		for _, entry := range entries {
			if strings.HasPrefix(entry.Name(), ".") {
				continue
			}

			full := filepath.Join(dir, entry.Name())
			info, err := entry.Info()
			if err != nil {
				continue
			}

			if info.Mode()&os.ModeSymlink != 0 {
				resolved, err := filepath.EvalSymlinks(full)
				if err != nil {
					continue
				}
				rel, err := filepath.Rel(canonicalRoot, resolved)
				if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
					continue // escapes root, silently skipped per traversal rules
				}
				if visited[resolved] {
					continue // break symlink cycles
				}
				visited[resolved] = true

				st, err := os.Stat(resolved)
				if err != nil {
					continue
				}
				if st.IsDir() {
					if err := walkDir(full); err != nil {
						return err
					}
					continue
				}
				info = st
			}

			if info.IsDir() {
				if err := walkDir(full); err != nil {
					return err
				}
				continue
			}

			if !isCandidateFile(entry.Name(), root.Source) {
				continue
			}

			meta, ok := buildMeta(full, dir, skillsDir, root.Source)
			if ok {
				metas = append(metas, meta)
			}
		}
		return nil
	}

	if err := walkDir(skillsDir); err != nil {
		return nil, err
	}
	return metas, nil
}

// isCandidateFile reports whether name matches the traversal rule for
// source's strictness: exactly "SKILL.md" for strict sources, any "*.md"
// for permissive sources.
func isCandidateFile(name string, source skillsource.Source) bool {
	if source.Strict() {
		return name == "SKILL.md"
	}
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// buildMeta reads, hashes, and parses one candidate file into a SkillMeta.
// Parse failures are collected onto the record's Diagnostic rather than
// propagated.
func buildMeta(path, dir, skillsDir string, source skillsource.Source) (SkillMeta, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SkillMeta{}, false
	}

	rel, err := filepath.Rel(skillsDir, path)
	if err != nil {
		rel = path
	}

	sum := sha256.Sum256(data)
	hash := "sha256:" + hex.EncodeToString(sum[:])

	meta := SkillMeta{
		Source:       source,
		SourcePath:   path,
		RelativePath: rel,
		ContentHash:  hash,
		ByteLen:      int64(len(data)),
	}

	fm, _, perr := frontmatter.Parse(data)
	if perr != nil {
		meta.Diagnostic = perr
		meta.Name = deriveName(path, dir)
		return meta, true
	}

	meta.Frontmatter = fm
	meta.Description = fm.Description
	if fm.Version != "" {
		if v, err := semver.NewVersion(fm.Version); err == nil {
			meta.Version = v
		}
	}

	if fm.Name != "" {
		meta.Name = fm.Name
	} else {
		meta.Name = deriveName(path, dir)
	}

	return meta, true
}

// deriveName derives a skill's name from its parent directory (when the
// file itself is SKILL.md) or its file stem otherwise. Frontmatter's own
// name field, when present, wins over either.
func deriveName(path, dir string) string {
	if filepath.Base(path) == "SKILL.md" {
		return filepath.Base(dir)
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
