package invoker

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go/aws/arn"
)

// FunctionName is a parsed Lambda function identifier.
type FunctionName struct {
	Name      string
	Region    string // empty unless given by a full ARN
	Qualifier string
}

// LogGroup returns the CloudWatch Logs group the function writes to.
func (f FunctionName) LogGroup() string {
	return fmt.Sprintf("/aws/lambda/%s", f.Name)
}

// ParseFunctionName accepts the identifier formats of the Invoke API.
//   - Function name - my-function, my-function:v1.
//   - Function ARN - arn:aws:lambda:us-west-2:123456789012:function:my-function.
//   - Partial ARN - 123456789012:function:my-function.
func ParseFunctionName(name string) (FunctionName, error) {
	if arn.IsARN(name) {
		return parseFunctionARN(name)
	}

	p := strings.Split(name, ":")
	switch {
	case len(p) == 1 && p[0] != "":
		return FunctionName{Name: p[0]}, nil
	case len(p) == 2 && p[0] != "" && !isAccountID(p[0]):
		return FunctionName{Name: p[0], Qualifier: p[1]}, nil
	case (len(p) == 3 || len(p) == 4) && isAccountID(p[0]) && p[1] == "function":
		fn := FunctionName{Name: p[2]}
		if len(p) == 4 {
			fn.Qualifier = p[3]
		}
		return fn, nil
	}
	return FunctionName{}, fmt.Errorf("wrong format function name, %s", name)
}

func parseFunctionARN(name string) (FunctionName, error) {
	a, err := arn.Parse(name)
	if err != nil {
		return FunctionName{}, fmt.Errorf("wrong format function name, %s: %w", name, err)
	}
	if a.Service != "lambda" {
		return FunctionName{}, fmt.Errorf("not a lambda arn, %s", name)
	}

	// resource is function:<name>[:<qualifier>]
	r := strings.Split(a.Resource, ":")
	if len(r) < 2 || len(r) > 3 || r[0] != "function" || r[1] == "" {
		return FunctionName{}, fmt.Errorf("wrong format function name, %s", name)
	}
	fn := FunctionName{Name: r[1], Region: a.Region}
	if len(r) == 3 {
		fn.Qualifier = r[2]
	}
	return fn, nil
}

func isAccountID(s string) bool {
	_, err := strconv.Atoi(s)
	return err == nil
}
