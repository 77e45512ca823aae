package invoker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFunctionName(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    FunctionName
		wantErr bool
	}{
		{name: "name", input: "my-function", want: FunctionName{Name: "my-function"}},
		{name: "name with alias", input: "my-function:live", want: FunctionName{Name: "my-function", Qualifier: "live"}},
		{
			name:  "arn",
			input: "arn:aws:lambda:us-west-2:123456789012:function:my-function",
			want:  FunctionName{Name: "my-function", Region: "us-west-2"},
		},
		{
			name:  "arn with version",
			input: "arn:aws-cn:lambda:cn-north-1:123456789012:function:my-function:3",
			want:  FunctionName{Name: "my-function", Region: "cn-north-1", Qualifier: "3"},
		},
		{
			name:  "partial arn",
			input: "123456789012:function:my-function",
			want:  FunctionName{Name: "my-function"},
		},
		{name: "empty", input: "", wantErr: true},
		{name: "account only", input: "123456789012:my-function", wantErr: true},
		{name: "bad arn", input: "arn:aws:s3:::bucket", wantErr: true},
		{name: "non lambda arn", input: "arn:aws:s3:us-east-1:123456789012:function:x", wantErr: true},
		{name: "lambda layer arn", input: "arn:aws:lambda:us-east-1:123456789012:layer:x:1", wantErr: true},
		{name: "short arn", input: "arn:aws:lambda", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFunctionName(tc.input)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestFunctionName_LogGroup(t *testing.T) {
	assert.Equal(t, "/aws/lambda/my-function", FunctionName{Name: "my-function"}.LogGroup())
}
