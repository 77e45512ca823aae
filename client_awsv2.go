package invoker

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/config"
	lambdav2 "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/lambda"
	"github.com/pkg/errors"
)

// V2InvokeAPI is the Invoke method of *lambdav2.Client.
type V2InvokeAPI interface {
	Invoke(ctx context.Context, params *lambdav2.InvokeInput, optFns ...func(*lambdav2.Options)) (*lambdav2.InvokeOutput, error)
}

// V2Client adapts an aws-sdk-go-v2 Lambda client to Client. Request options
// of the v1 API are ignored.
type V2Client struct {
	api V2InvokeAPI
}

// NewV2Client wraps api.
func NewV2Client(api V2InvokeAPI) *V2Client {
	return &V2Client{api: api}
}

// LoadV2Client builds a V2Client from the default v2 configuration chain.
func LoadV2Client(ctx context.Context, region string) (*V2Client, error) {
	var optFns []func(*config.LoadOptions) error
	if region != "" {
		optFns = append(optFns, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, errors.Wrap(err, "load aws config")
	}
	return NewV2Client(lambdav2.NewFromConfig(cfg)), nil
}

// InvokeWithContext implements Client.
func (c *V2Client) InvokeWithContext(ctx aws.Context, input *lambda.InvokeInput, _ ...request.Option) (*lambda.InvokeOutput, error) {
	in := &lambdav2.InvokeInput{
		FunctionName:   input.FunctionName,
		InvocationType: types.InvocationType(aws.StringValue(input.InvocationType)),
		LogType:        types.LogType(aws.StringValue(input.LogType)),
		Payload:        input.Payload,
		Qualifier:      input.Qualifier,
		ClientContext:  input.ClientContext,
	}
	out, err := c.api.Invoke(ctx, in)
	if err != nil {
		return nil, err
	}
	return &lambda.InvokeOutput{
		StatusCode:      aws.Int64(int64(out.StatusCode)),
		FunctionError:   out.FunctionError,
		LogResult:       out.LogResult,
		ExecutedVersion: out.ExecutedVersion,
		Payload:         out.Payload,
	}, nil
}

var (
	_ Client      = (*V2Client)(nil)
	_ Client      = (*RegionalClient)(nil)
	_ Client      = (*lambda.Lambda)(nil)
	_ V2InvokeAPI = (*lambdav2.Client)(nil)
)
