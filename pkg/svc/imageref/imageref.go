package imageref

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/go-containerregistry/pkg/name"
)

// ErrEmptyReference is returned when the image address is empty.
var ErrEmptyReference = errors.New("image reference is empty")

// Reference is a parsed image address such as <registry-host>/<repo>:<tag>.
type Reference struct {
	Registry   string `json:"registry"`
	Repository string `json:"repository"`
	Tag        string `json:"tag,omitempty"`
	Digest     string `json:"digest,omitempty"`
}

// Parse parses an image address. Addresses carrying both a tag and a digest keep both.
func Parse(ref string) (Reference, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Reference{}, ErrEmptyReference
	}

	parsed, err := name.ParseReference(ref, name.WeakValidation)
	if err != nil {
		return Reference{}, fmt.Errorf("failed to parse image reference %q: %w", ref, err)
	}

	result := Reference{
		Registry:   parsed.Context().RegistryStr(),
		Repository: parsed.Context().RepositoryStr(),
	}

	switch typed := parsed.(type) {
	case name.Tag:
		result.Tag = typed.TagStr()
	case name.Digest:
		result.Digest = typed.DigestStr()
		result.Tag = explicitTag(ref)
	}

	return result, nil
}

// String renders the reference in its canonical form.
func (r Reference) String() string {
	var builder strings.Builder

	builder.WriteString(r.Registry)
	builder.WriteString("/")
	builder.WriteString(r.Repository)

	if r.Tag != "" {
		builder.WriteString(":")
		builder.WriteString(r.Tag)
	}

	if r.Digest != "" {
		builder.WriteString("@")
		builder.WriteString(r.Digest)
	}

	return builder.String()
}

// explicitTag returns the tag written before a digest, if any.
func explicitTag(ref string) string {
	base, _, found := strings.Cut(ref, "@")
	if !found {
		return ""
	}

	lastSegment := base[strings.LastIndex(base, "/")+1:]

	_, tag, hasTag := strings.Cut(lastSegment, ":")
	if !hasTag {
		return ""
	}

	return tag
}
