package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"github.com/Cyclone1070/workbench/internal/config"
	"github.com/mitchellh/mapstructure"
	"google.golang.org/genai"
)

// validator is implemented by request types that check themselves against config.
type validator interface {
	Validate(cfg *config.Config) error
}

// Runner executes a tool with a typed request.
type Runner[Req, Resp any] func(ctx context.Context, req *Req) (*Resp, error)

// BaseAdapter turns a typed Runner into a Tool: it decodes the argument map,
// validates the request, runs it and marshals the response to JSON.
type BaseAdapter[Req, Resp any] struct {
	declaration *genai.FunctionDeclaration
	config      *config.Config
	run         Runner[Req, Resp]
}

// NewBaseAdapter creates a new base adapter with the given configuration.
func NewBaseAdapter[Req, Resp any](
	name string,
	description string,
	params *genai.Schema,
	cfg *config.Config,
	run Runner[Req, Resp],
) *BaseAdapter[Req, Resp] {
	if cfg == nil {
		panic("cfg is required")
	}
	if run == nil {
		panic("run is required")
	}
	return &BaseAdapter[Req, Resp]{
		declaration: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  params,
		},
		config: cfg,
		run:    run,
	}
}

// Name implements Tool
func (b *BaseAdapter[Req, Resp]) Name() string {
	return b.declaration.Name
}

// Declaration implements Tool
func (b *BaseAdapter[Req, Resp]) Declaration() *genai.FunctionDeclaration {
	return b.declaration
}

// Execute implements Tool
func (b *BaseAdapter[Req, Resp]) Execute(ctx context.Context, args map[string]any) (string, error) {
	req := new(Req)
	if err := decodeArgs(args, req); err != nil {
		return "", &ArgumentError{Tool: b.Name(), Cause: err}
	}

	if v, ok := any(req).(validator); ok {
		if err := v.Validate(b.config); err != nil {
			return "", fmt.Errorf("%s validation failed: %w", b.Name(), err)
		}
	}

	resp, err := b.run(ctx, req)
	if err != nil {
		return "", err
	}

	bytes, err := json.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal response: %w", err)
	}
	return string(bytes), nil
}

// decodeArgs decodes a model-supplied argument map into out. Unknown keys are
// rejected. Durations accept a number of seconds or a Go duration string.
func decodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			secondsToDurationHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	return decoder.Decode(args)
}

var durationType = reflect.TypeOf(time.Duration(0))

// secondsToDurationHook reads numeric values bound for a time.Duration as seconds.
// JSON numbers arrive as float64.
func secondsToDurationHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != durationType {
		return data, nil
	}
	switch v := data.(type) {
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	case float32:
		return time.Duration(float64(v) * float64(time.Second)), nil
	case int:
		return time.Duration(v) * time.Second, nil
	case int64:
		return time.Duration(v) * time.Second, nil
	}
	return data, nil
}
