package research

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Trace records how the last Chain.Query resolved: which provider finally
// answered and what every failed attempt reported.
type Trace struct {
	Engine string
	Errors []string
}

// Chain tries each provider in order and returns the first non-empty
// answer. A provider returning ("", nil) is treated as a miss, not a
// failure, and the chain moves on.
type Chain struct {
	providers []namedProvider

	mu    sync.Mutex
	trace Trace
}

type namedProvider struct {
	name string
	p    Collaborator
}

func NewChain() *Chain {
	return &Chain{}
}

// Add appends a provider under a display name used in traces and logs.
func (c *Chain) Add(name string, p Collaborator) *Chain {
	c.providers = append(c.providers, namedProvider{name: name, p: p})
	return c
}

func (c *Chain) Query(ctx context.Context, text string) (string, error) {
	reqID := uuid.NewString()[:8]
	trace := Trace{}
	for _, np := range c.providers {
		if err := ctx.Err(); err != nil {
			trace.Errors = append(trace.Errors, fmt.Sprintf("%s: %v", np.name, err))
			break
		}
		answer, err := np.p.Query(ctx, text)
		if err != nil {
			log.Printf("[RESEARCH] %s: %s failed: %v", reqID, np.name, err)
			trace.Errors = append(trace.Errors, fmt.Sprintf("%s: %v", np.name, err))
			continue
		}
		if answer == "" {
			trace.Errors = append(trace.Errors, np.name+": no answer")
			continue
		}
		trace.Engine = np.name
		c.setTrace(trace)
		log.Printf("[RESEARCH] %s: answered by %s", reqID, np.name)
		return answer, nil
	}
	c.setTrace(trace)
	return "", fmt.Errorf("all providers exhausted: %v", trace.Errors)
}

func (c *Chain) setTrace(t Trace) {
	c.mu.Lock()
	c.trace = t
	c.mu.Unlock()
}

// LastTrace returns a copy of the most recent query trace.
func (c *Chain) LastTrace() Trace {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := Trace{Engine: c.trace.Engine}
	out.Errors = append(out.Errors, c.trace.Errors...)
	return out
}
