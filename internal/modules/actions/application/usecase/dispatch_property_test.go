package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"dsfrGateway/internal/modules/actions/application/port"
	"dsfrGateway/internal/modules/actions/domain"
)

var actionTypes = []domain.ActionType{domain.ActionCreate, domain.ActionUpdate, domain.ActionDelete}

// Property: every supported dispatch performs one store call and at most one side effect.
func TestDispatchSingleCallAndSingleSideEffect(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("one store call, at most one follow-up", prop.ForAll(
		func(typeIndex int, navigate, fail bool, recordID string, reload []string) bool {
			f := newDispatchFixture()
			if fail {
				f.store.err = errors.New("boom")
			} else {
				f.store.result = port.MutationResult{RecordID: recordID}
			}
			descriptor := domain.ActionDescriptor{Type: actionTypes[typeIndex], Navigate: navigate, Reload: domain.ReloadList(reload)}

			outcome, err := f.uc.Dispatch(context.Background(), descriptor)
			if err != nil {
				return false
			}
			if len(f.store.Calls()) != 1 {
				return false
			}
			if outcome.Kind == OutcomeNone {
				return f.sideEffects() == 0
			}
			return f.sideEffects() == 1
		},
		gen.IntRange(0, len(actionTypes)-1),
		gen.Bool(),
		gen.Bool(),
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}

// Property: navigation wins over reload whenever a record id came back and navigate is set.
func TestDispatchNavigatePrecedence(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("navigate precedes reload", prop.ForAll(
		func(recordID string, reload []string) bool {
			f := newDispatchFixture()
			f.store.result = port.MutationResult{RecordID: recordID}
			outcome, _ := f.uc.Dispatch(context.Background(), domain.ActionDescriptor{Type: domain.ActionCreate, Navigate: true, Reload: domain.ReloadList(reload)})

			if outcome.Kind != OutcomeNavigate || len(f.refresher.calls) != 0 {
				return false
			}
			return f.navigator.requests[0].RecordID == recordID
		},
		gen.Identifier(),
		gen.SliceOf(gen.Identifier()),
	))

	properties.TestingRun(t)
}

// Property: a failure payload carries one error alert per field error, or exactly one alert.
func TestDispatchFailurePayloadShape(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("failure payload mirrors the error list", prop.ForAll(
		func(message string, fieldMessages []string) bool {
			f := newDispatchFixture()
			body := domain.ErrorBody{Message: message}
			if len(fieldMessages) > 0 {
				output := &domain.ErrorOutput{}
				for _, m := range fieldMessages {
					output.Errors = append(output.Errors, domain.FieldError{Message: m})
				}
				body.Output = output
			}
			f.store.err = &domain.OperationError{StatusCode: 400, StatusText: "Bad Request", Body: body}

			outcome, _ := f.uc.Dispatch(context.Background(), domain.ActionDescriptor{Type: domain.ActionUpdate})
			if outcome.Kind != OutcomeAlert || len(f.presenter.payloads) != 1 {
				return false
			}
			payload := f.presenter.payloads[0]
			for _, alert := range payload.Alerts {
				if alert.Severity != domain.SeverityError {
					return false
				}
			}
			if len(fieldMessages) == 0 {
				return len(payload.Alerts) == 1 && payload.Header == ""
			}
			return len(payload.Alerts) == len(fieldMessages)
		},
		gen.AlphaString(),
		gen.SliceOf(gen.AlphaString()),
	))

	properties.TestingRun(t)
}
