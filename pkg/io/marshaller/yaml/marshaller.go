// Package yamlmarshaller implements marshaller.Marshaller for YAML through JSON struct tags.
package yamlmarshaller

import (
	"fmt"

	"github.com/local-api-gateway/infra/pkg/io/marshaller"
	"sigs.k8s.io/yaml"
)

// Marshaller marshals values to YAML using their json tags.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[struct{}] = (*Marshaller[struct{}])(nil)

// NewMarshaller creates a YAML marshaller for T.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal serializes model to YAML.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := yaml.Marshal(model)
	if err != nil {
		return "", fmt.Errorf("failed to marshal yaml: %w", err)
	}

	return string(data), nil
}

// Unmarshal deserializes YAML data into model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := yaml.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	return nil
}
