// Package executor dispatches GraphQL operations to their selected endpoint
// off the calling goroutine and routes each outcome to a single result sink.
package executor

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/gqlpad/gqlpad/pkg/endpoint"
	"github.com/gqlpad/gqlpad/pkg/notify"
	"github.com/gqlpad/gqlpad/pkg/session"
	"github.com/gqlpad/gqlpad/pkg/summary"
)

const queryErrorTitle = "GraphQL Query Error"

// Executor performs query executions. It owns one HTTP client and one result
// sink; notifications for failures go through the bus.
type Executor struct {
	client   *http.Client
	sink     ResultSink
	notifier *notify.Bus

	// deliverMu serializes sink delivery, standing in for the editor's
	// coordinating execution context.
	deliverMu sync.Mutex

	// wg tracks in-flight dispatches so callers can drain them.
	wg sync.WaitGroup
}

// New creates an executor delivering to the given sink. The client applies a
// sane default timeout; hanging forever on a dead endpoint helps nobody.
func New(sink ResultSink, notifier *notify.Bus) *Executor {
	return &Executor{
		client:   &http.Client{Timeout: 30 * time.Second},
		sink:     sink,
		notifier: notifier,
	}
}

// Execute runs the binding's query against its selected endpoint. A binding
// with no selection, or a selection with an empty URL, is a silent no-op: no
// request is sent and no outcome is produced.
//
// Overlapping calls on the same binding are allowed; each produces its own
// outcome and the sink sees them in completion order (last write wins). The
// querying flag is simply re-raised by the second call.
func (x *Executor) Execute(binding *session.Binding) {
	ep := binding.SelectedEndpoint()
	if ep == nil || ep.URL == "" {
		return
	}

	req, err := x.buildRequest(binding, ep)
	if err != nil {
		// Construction failures surface synchronously, before any
		// dispatch is scheduled.
		encErr := &EncodingError{URL: ep.URL, Err: err}
		x.notifier.Error(queryErrorTitle, encErr.Error())
		return
	}

	binding.SetQuerying(true)
	x.wg.Add(1)
	go x.dispatch(binding, *ep, req)
}

// Wait blocks until all in-flight dispatches have delivered their outcomes.
func (x *Executor) Wait() {
	x.wg.Wait()
}

func (x *Executor) buildRequest(binding *session.Binding, ep *endpoint.Endpoint) (*http.Request, error) {
	body, err := BuildBody(binding.QueryText(), binding.VariablesText())
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, ep.URL, strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range ep.Headers() {
		req.Header.Set(key, value)
	}

	auth, err := ep.AuthorizationHeader(context.Background())
	if err != nil {
		return nil, err
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	return req, nil
}

func (x *Executor) dispatch(binding *session.Binding, ep endpoint.Endpoint, req *http.Request) {
	defer x.wg.Done()
	defer binding.SetQuerying(false)

	start := time.Now()
	resp, err := x.client.Do(req)
	if err != nil {
		x.fail(binding, ep, err)
		return
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		x.fail(binding, ep, err)
		return
	}
	elapsed := time.Since(start)

	body := string(data)
	count, known := summary.ErrorCount(body)

	x.deliver(binding, Outcome{
		Endpoint: ep,
		Response: &Response{
			Body:            body,
			Status:          resp.StatusCode,
			Elapsed:         elapsed,
			ErrorCount:      count,
			ErrorCountKnown: known,
		},
	})
}

func (x *Executor) fail(binding *session.Binding, ep endpoint.Endpoint, err error) {
	terr := &TransportError{URL: ep.URL, Err: err}
	x.notifier.Warn(queryErrorTitle, terr.Error())
	x.deliver(binding, Outcome{Endpoint: ep, Err: terr})
}

// deliver routes an outcome to the sink. A binding unbound while its request
// was in flight drops the outcome rather than faulting.
func (x *Executor) deliver(binding *session.Binding, outcome Outcome) {
	if binding.Detached() {
		return
	}
	x.deliverMu.Lock()
	defer x.deliverMu.Unlock()
	x.sink.Deliver(binding, outcome)
}

// BuildBody assembles the POST payload: {"query": <text>} with the variables
// text embedded as raw JSON under "variables" when present, absent otherwise.
// Variables that are not valid JSON are a construction error.
func BuildBody(query, variables string) (string, error) {
	body, err := sjson.Set("{}", "query", query)
	if err != nil {
		return "", err
	}

	if variables != "" {
		if !gjson.Valid(variables) {
			return "", &invalidVariablesError{}
		}
		body, err = sjson.SetRaw(body, "variables", variables)
		if err != nil {
			return "", err
		}
	}

	return body, nil
}

type invalidVariablesError struct{}

func (*invalidVariablesError) Error() string {
	return "variables are not valid JSON"
}
