// Package client submits marking documents to the CRPT (Chestny ZNAK)
// API while enforcing a client-side request rate.
//
// The client wraps three concerns around each submission:
//
//   - Rate limiting: a sliding-window limiter blocks callers until the
//     request can be sent without exceeding the configured rate. Callers
//     bound the wait with a context deadline.
//   - Rendering: the document is serialized to JSON, CSV, or XML with
//     the matching Content-Type before transport.
//   - Classification: non-2xx responses map to typed errors (AuthError,
//     RateLimitError, APIError) so callers can branch on failure mode.
//
// Example:
//
//	c, err := client.New(client.Config{
//	    AuthToken:    token,
//	    RequestLimit: 10,
//	    Window:       time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer c.Close()
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	result, err := c.CreateDocumentJSON(ctx, doc, signature)
package client
