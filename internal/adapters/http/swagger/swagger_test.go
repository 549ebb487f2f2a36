package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		Convey("When registering the swagger routes", func() {
			Register(ctx, mux)

			Convey("Then it should serve the ReDoc page", func() {
				req := httptest.NewRequest("GET", "/api-docs", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Redoc.init")
			})

			Convey("And it should serve the OpenAPI spec", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "yaml")
				So(w.Body.String(), ShouldContainSubstring, "/recommendations")
			})
		})

		Convey("When registering with a nil mux", func() {
			So(func() { Register(ctx, nil) }, ShouldPanic)
		})
	})
}
