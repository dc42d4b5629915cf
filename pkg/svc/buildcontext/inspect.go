package buildcontext

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"
)

const dockerignoreFile = ".dockerignore"

// Report describes a build context as the builder will see it.
type Report struct {
	// ContextDir is the absolute build context directory.
	ContextDir string
	// Dockerfile is the absolute Dockerfile path.
	Dockerfile string
	// Files is the number of regular files sent to the builder.
	Files int
	// Bytes is the total size of the files sent to the builder.
	Bytes int64
	// Excluded is the number of regular files excluded by .dockerignore.
	Excluded int
	// IgnorePatterns are the patterns read from .dockerignore.
	IgnorePatterns []string
	// DockerfileOutsideContext is true when the Dockerfile does not live under ContextDir.
	DockerfileOutsideContext bool
	// DockerfileIgnored is true when .dockerignore matches the Dockerfile.
	// The builder still receives it, but other tooling reading the context may not.
	DockerfileIgnored bool
}

// Inspect resolves contextDir and dockerfile against baseDir and walks the context.
func Inspect(baseDir, contextDir, dockerfile string) (*Report, error) {
	contextPath, err := resolve(baseDir, contextDir)
	if err != nil {
		return nil, err
	}

	dockerfilePath, err := resolve(baseDir, dockerfile)
	if err != nil {
		return nil, err
	}

	err = checkContext(contextPath)
	if err != nil {
		return nil, err
	}

	err = checkDockerfile(dockerfilePath)
	if err != nil {
		return nil, err
	}

	patterns, err := readIgnorePatterns(contextPath)
	if err != nil {
		return nil, err
	}

	matcher, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, fmt.Errorf("invalid %s pattern: %w", dockerignoreFile, err)
	}

	report := &Report{
		ContextDir:     contextPath,
		Dockerfile:     dockerfilePath,
		IgnorePatterns: patterns,
	}

	relDockerfile, err := filepath.Rel(contextPath, dockerfilePath)
	if err != nil || relDockerfile == ".." || strings.HasPrefix(relDockerfile, ".."+string(filepath.Separator)) {
		report.DockerfileOutsideContext = true
	} else {
		ignored, matchErr := matcher.MatchesOrParentMatches(filepath.ToSlash(relDockerfile))
		if matchErr != nil {
			return nil, fmt.Errorf("failed to match %s: %w", relDockerfile, matchErr)
		}

		report.DockerfileIgnored = ignored
	}

	err = walkContext(contextPath, matcher, report)
	if err != nil {
		return nil, err
	}

	return report, nil
}

func resolve(baseDir, path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	return abs, nil
}

func checkContext(contextPath string) error {
	info, err := os.Stat(contextPath)
	if err != nil {
		return fmt.Errorf("failed to stat build context %s: %w", contextPath, err)
	}

	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrContextNotDirectory, contextPath)
	}

	return nil
}

func checkDockerfile(dockerfilePath string) error {
	info, err := os.Stat(dockerfilePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDockerfileNotFound, dockerfilePath)
		}

		return fmt.Errorf("failed to stat dockerfile %s: %w", dockerfilePath, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrDockerfileNotRegular, dockerfilePath)
	}

	return nil
}

func readIgnorePatterns(contextPath string) ([]string, error) {
	//nolint:gosec // path is the build context chosen by the operator plus a constant file name
	file, err := os.Open(filepath.Join(contextPath, dockerignoreFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to open %s: %w", dockerignoreFile, err)
	}

	defer func() { _ = file.Close() }()

	patterns, err := ignorefile.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dockerignoreFile, err)
	}

	return patterns, nil
}

func walkContext(contextPath string, matcher *patternmatcher.PatternMatcher, report *Report) error {
	err := filepath.WalkDir(contextPath, func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}

		if path == contextPath || !entry.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(contextPath, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}

		ignored, err := matcher.MatchesOrParentMatches(filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("failed to match %s: %w", rel, err)
		}

		if ignored {
			report.Excluded++

			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}

		report.Files++
		report.Bytes += info.Size()

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk build context %s: %w", contextPath, err)
	}

	return nil
}
