// Package jsonmarshaller implements marshaller.Marshaller for indented JSON.
package jsonmarshaller

import (
	"encoding/json"
	"fmt"

	"github.com/local-api-gateway/infra/pkg/io/marshaller"
)

// Marshaller marshals values to two-space indented JSON terminated by a newline.
type Marshaller[T any] struct{}

var _ marshaller.Marshaller[struct{}] = (*Marshaller[struct{}])(nil)

// NewMarshaller creates a JSON marshaller for T.
func NewMarshaller[T any]() *Marshaller[T] {
	return &Marshaller[T]{}
}

// Marshal serializes model to indented JSON.
func (m *Marshaller[T]) Marshal(model T) (string, error) {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal json: %w", err)
	}

	return string(data) + "\n", nil
}

// Unmarshal deserializes JSON data into model.
func (m *Marshaller[T]) Unmarshal(data []byte, model *T) error {
	err := json.Unmarshal(data, model)
	if err != nil {
		return fmt.Errorf("failed to unmarshal json: %w", err)
	}

	return nil
}
