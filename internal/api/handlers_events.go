package api

import (
	"bufio"
	"fmt"
	"time"

	"github.com/evamaren/daybook/internal/remote"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const eventsHeartbeat = 15 * time.Second

// Events streams table change notifications to the client over SSE, one
// "change" event per publish on the sync adapter's bus. The stream ends when
// the client goes away; each unsubscribe closure is safe to call even if the
// writer never ran.
func (handler *Handler) Events(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "authentication required")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	notifications := make(chan string, 8)
	tables := []string{remote.TableEntries, remote.TableMeals, remote.TablePlans}
	unsubscribes := make([]func(), 0, len(tables))
	for _, table := range tables {
		changed := table
		unsubscribes = append(unsubscribes, handler.adapter.Subscribe(changed, func() {
			select {
			case notifications <- changed:
			default:
			}
		}))
	}

	// The stream writer runs after this handler returns; it must not touch
	// the fiber context, only what it captured.
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(writer *bufio.Writer) {
		defer func() {
			for _, unsubscribe := range unsubscribes {
				unsubscribe()
			}
		}()

		heartbeat := time.NewTicker(eventsHeartbeat)
		defer heartbeat.Stop()

		for {
			select {
			case table := <-notifications:
				fmt.Fprintf(writer, "event: change\ndata: %s\n\n", table)
			case <-heartbeat.C:
				fmt.Fprint(writer, ": keep-alive\n\n")
			}
			if err := writer.Flush(); err != nil {
				return
			}
		}
	}))

	return nil
}
