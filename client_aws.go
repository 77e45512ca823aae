package invoker

import (
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials/stscreds"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/lambda"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

const maxRegionClients = 16

// SessionOptions returns the session options used by the command line tool:
// shared config enabled, MFA tokens read from stdin and region set when given.
func SessionOptions(region string) session.Options {
	awsConfig := aws.NewConfig()
	if region != "" {
		awsConfig = awsConfig.WithRegion(region)
	}
	return session.Options{
		SharedConfigState:       session.SharedConfigEnable,
		AssumeRoleTokenProvider: stscreds.StdinTokenProvider,
		Config:                  *awsConfig,
	}
}

// RegionalClient is a Client that sends each request to the region named in
// the function ARN, falling back to the session's default region.
type RegionalClient struct {
	mu        sync.Mutex
	clients   *lru.Cache
	newClient func(region string) (Client, error)
}

// NewRegionalClient returns a RegionalClient creating one *lambda.Lambda per
// region from opts.
func NewRegionalClient(opts session.Options) (*RegionalClient, error) {
	return newRegionalClient(func(region string) (Client, error) {
		o := opts
		if region != "" {
			o.Config = *o.Config.Copy().WithRegion(region)
		}
		sess, err := session.NewSessionWithOptions(o)
		if err != nil {
			return nil, errors.Wrapf(err, "aws session, region %q", region)
		}
		return lambda.New(sess), nil
	})
}

func newRegionalClient(newClient func(region string) (Client, error)) (*RegionalClient, error) {
	cache, err := lru.New(maxRegionClients)
	if err != nil {
		return nil, err
	}
	return &RegionalClient{
		clients:   cache,
		newClient: newClient,
	}, nil
}

// InvokeWithContext implements Client.
func (rc *RegionalClient) InvokeWithContext(ctx aws.Context, input *lambda.InvokeInput, opts ...request.Option) (*lambda.InvokeOutput, error) {
	fn, err := ParseFunctionName(aws.StringValue(input.FunctionName))
	if err != nil {
		return nil, err
	}
	svc, err := rc.client(fn.Region)
	if err != nil {
		return nil, err
	}
	return svc.InvokeWithContext(ctx, input, opts...)
}

func (rc *RegionalClient) client(region string) (Client, error) {
	if c, ok := rc.clients.Get(region); ok {
		return c.(Client), nil
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()
	if c, ok := rc.clients.Get(region); ok {
		return c.(Client), nil
	}
	c, err := rc.newClient(region)
	if err != nil {
		return nil, err
	}
	rc.clients.Add(region, c)
	return c, nil
}
