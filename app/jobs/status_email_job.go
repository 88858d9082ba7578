// Package jobs defines queued background jobs.
package jobs

import (
	"fmt"

	"github.com/anandicecream/storefront/app/models"
	"github.com/anandicecream/storefront/internal/notify"
	"github.com/anandicecream/storefront/pkg/queue"
)

// dispatcher sends the actual mail; set once at boot via UseDispatcher.
var dispatcher *notify.Dispatcher

// UseDispatcher wires the notification dispatcher jobs deliver through.
func UseDispatcher(d *notify.Dispatcher) { dispatcher = d }

// Register adds all job types to the queue registry. Call once at boot.
// The queue keys envelopes by the job's dynamic type name, so the
// registry name is derived the same way.
func Register() {
	queue.Register(fmt.Sprintf("%T", &StatusEmailJob{}), func() queue.Job { return &StatusEmailJob{} })
}

// StatusEmailJob emails a customer about a status change on their order.
// Unlike the admin notification this goes through the retrying queue: a
// confirmation or cancellation mail is worth a few delivery attempts.
type StatusEmailJob struct {
	Order models.Order `json:"order"`
}

// Handle sends the email. A returned error triggers a queue retry.
func (j *StatusEmailJob) Handle() error {
	if dispatcher == nil {
		return nil
	}
	return dispatcher.StatusChanged(&j.Order)
}
