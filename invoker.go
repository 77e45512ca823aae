package invoker

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/lambda"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client is the part of the Lambda API the Invoker needs. *lambda.Lambda
// and lambdaiface.LambdaAPI satisfy it.
type Client interface {
	InvokeWithContext(aws.Context, *lambda.InvokeInput, ...request.Option) (*lambda.InvokeOutput, error)
}

// Invoker calls Lambda functions synchronously and normalizes their responses.
// It keeps no per-call state and is safe for concurrent use.
type Invoker struct {
	client Client
	logger *zap.Logger
}

// Option configures an Invoker.
type Option func(*Invoker)

// WithLogger sets the logger used for debug output. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(iv *Invoker) {
		iv.logger = l
	}
}

// New returns an Invoker that sends requests through client.
func New(client Client, opts ...Option) *Invoker {
	iv := &Invoker{
		client: client,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(iv)
	}
	return iv
}

// Invoke calls the function name with payload serialized as JSON and returns
// the decoded response.
//
// Errors returned by the client are passed through unchanged. A response
// without payload yields ErrNoPayload and a payload carrying errorMessage
// yields an *InvocationError built by FormatError.
func (iv *Invoker) Invoke(ctx context.Context, name string, payload interface{}) (interface{}, error) {
	if name == "" {
		return nil, ErrNoFunctionName
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrapf(err, "marshal payload for %s", name)
	}

	input := &lambda.InvokeInput{
		FunctionName:   aws.String(name),
		InvocationType: aws.String(lambda.InvocationTypeRequestResponse),
		Payload:        body,
	}

	log := iv.logger.With(zap.String("function_name", name))
	log.Debug("invoke", zap.Int("payload_size", len(body)))

	resp, err := iv.client.InvokeWithContext(ctx, input)
	if err != nil {
		log.Debug("invoke failed", zap.Error(err))
		return nil, err
	}
	if resp == nil || len(resp.Payload) == 0 {
		return nil, ErrNoPayload
	}

	result := ParsePayload(resp.Payload)
	if ie, ok := applicationError(result); ok {
		log.Debug("function error",
			zap.Int("status_code", ie.StatusCode),
			zap.String("function_error", aws.StringValue(resp.FunctionError)))
		return nil, ie
	}
	return result, nil
}

// InvokeInto is Invoke followed by decoding the result into out.
func (iv *Invoker) InvokeInto(ctx context.Context, name string, payload interface{}, out interface{}) error {
	result, err := iv.Invoke(ctx, name, payload)
	if err != nil {
		return err
	}
	buf, err := json.Marshal(result)
	if err != nil {
		return errors.Wrapf(err, "re-encode result of %s", name)
	}
	if err := json.Unmarshal(buf, out); err != nil {
		return errors.Wrapf(err, "decode result of %s", name)
	}
	return nil
}
