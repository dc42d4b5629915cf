// Package buildcontext inspects an image build context before it is handed to the builder.
//
// The inspection mirrors what the builder will send: files excluded by .dockerignore are
// not counted, and a Dockerfile outside the context or missing altogether is reported
// before any remote call is made.
package buildcontext
