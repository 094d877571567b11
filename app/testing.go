package main

import "net/http"

// resetHandler wipes all persisted state. It exists purely for external
// test harnesses and is only routed when ENVIRONMENT=test.
func (app *application) resetHandler(w http.ResponseWriter, r *http.Request) {
	for _, table := range []string{"comments", "blogs", "users"} {
		_, err := app.db.ExecContext(r.Context(), "DELETE FROM "+table)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	app.cache.Flush()

	w.WriteHeader(http.StatusNoContent)
}
