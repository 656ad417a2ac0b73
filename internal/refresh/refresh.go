// Package refresh invokes the deployed data-refresh function on demand. The
// managed scheduler normally triggers it every six hours; this is the manual
// path for forcing a refresh after a deploy.
package refresh

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// lambdaAPI is the slice of the Lambda client the invoker uses.
type lambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// Invoker performs synchronous invocations of the refresh function.
type Invoker struct {
	client lambdaAPI
}

func NewInvoker(cfg aws.Config) *Invoker {
	return &Invoker{client: lambda.NewFromConfig(cfg)}
}

// Invoke calls functionName synchronously with payload (nil means an empty
// event) and returns the decoded response. A handler-side failure surfaces as
// an error carrying the function's error payload.
func (i *Invoker) Invoke(ctx context.Context, functionName string, payload any) (map[string]any, error) {
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	out, err := i.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(functionName),
		InvocationType: types.InvocationTypeRequestResponse,
		Payload:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", functionName, err)
	}

	if out.FunctionError != nil {
		return nil, fmt.Errorf("function %s failed: %s: %s", functionName, aws.ToString(out.FunctionError), string(out.Payload))
	}

	var response map[string]any
	if len(out.Payload) > 0 {
		if err := json.Unmarshal(out.Payload, &response); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
	}

	return response, nil
}
