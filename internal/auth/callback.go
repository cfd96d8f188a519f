package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/browser"
)

// waitForQuery serves one HTTP callback on addr, opens openURL in the
// system browser, and returns the query parameters of the first
// request that passes validate. The server is torn down before return.
func waitForQuery(ctx context.Context, addr, openURL string, validate func(url.Values) error) (url.Values, error) {
	resultChan := make(chan url.Values, 1)
	errChan := make(chan error, 1)

	mux := http.NewServeMux()
	server := &http.Server{Addr: addr, Handler: mux}
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		values := r.URL.Query()
		if err := validate(values); err != nil {
			select {
			case errChan <- err:
			default:
			}
			http.Error(w, "Authentication failed. You can close this window.", http.StatusBadRequest)
			return
		}
		select {
		case resultChan <- values:
		default:
		}
		fmt.Fprint(w, "✅ Sign-in successful! You can close this browser window and return to the terminal.")
	})

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			select {
			case errChan <- fmt.Errorf("callback server error: %w", err):
			default:
			}
		}
	}()
	defer server.Shutdown(context.Background())

	if err := browser.OpenURL(openURL); err != nil {
		fmt.Printf("\nIf your browser didn't open, please open this URL manually:\n\n%s\n\n", openURL)
	}

	select {
	case values := <-resultChan:
		return values, nil
	case err := <-errChan:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
