package controller

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// bindJSON runs a payload through gin's JSON binding for the given
// request struct and reports whether validation accepted it.
func bindJSON(t *testing.T, target func(*gin.Context) error, body string) bool {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ok := false
	router := gin.New()
	router.POST("/", func(ctx *gin.Context) {
		ok = target(ctx) == nil
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(httptest.NewRecorder(), req)
	return ok
}

func TestCreateContentRequestValidation(t *testing.T) {
	base := url.Values{
		"title":       {"Fractions"},
		"description": {"Adding fractions"},
		"subject":     {"Mathematics"},
		"grade":       {"7"},
		"contentType": {"text"},
	}

	tests := []struct {
		name   string
		mutate func(url.Values)
		wantOK bool
	}{
		{"valid", func(url.Values) {}, true},
		{"multi word subject", func(v url.Values) { v.Set("subject", "Social Studies") }, true},
		{"grade All", func(v url.Values) { v.Set("grade", "All") }, true},
		{"missing description", func(v url.Values) { v.Del("description") }, false},
		{"unknown subject", func(v url.Values) { v.Set("subject", "Alchemy") }, false},
		{"grade out of range", func(v url.Values) { v.Set("grade", "13") }, false},
		{"unknown content type", func(v url.Values) { v.Set("contentType", "slideshow") }, false},
	}

	gin.SetMode(gin.TestMode)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			for k, vs := range base {
				form[k] = vs
			}
			tt.mutate(form)

			ok := false
			router := gin.New()
			router.POST("/", func(ctx *gin.Context) {
				var req CreateContentRequest
				ok = ctx.ShouldBind(&req) == nil
			})
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			router.ServeHTTP(httptest.NewRecorder(), req)

			if ok != tt.wantOK {
				t.Errorf("accepted = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestCreateQuizRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{
			"valid",
			`{"title":"Fractions","description":"Basics","subject":"Mathematics","grade":"7",
			  "questions":[{"questionText":"1/2+1/4?","questionType":"short-answer","correctAnswer":"3/4"}]}`,
			true,
		},
		{
			"missing description",
			`{"title":"Fractions","subject":"Mathematics","grade":"7",
			  "questions":[{"questionText":"1/2+1/4?","questionType":"short-answer","correctAnswer":"3/4"}]}`,
			false,
		},
		{
			"question without correct answer",
			`{"title":"Fractions","description":"Basics","subject":"Mathematics","grade":"7",
			  "questions":[{"questionText":"1/2+1/4?","questionType":"short-answer"}]}`,
			false,
		},
		{
			"unknown question type",
			`{"title":"Fractions","description":"Basics","subject":"Mathematics","grade":"7",
			  "questions":[{"questionText":"1/2+1/4?","questionType":"essay","correctAnswer":"3/4"}]}`,
			false,
		},
		{
			"empty question list",
			`{"title":"Fractions","description":"Basics","subject":"Mathematics","grade":"7","questions":[]}`,
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := bindJSON(t, func(ctx *gin.Context) error {
				var req CreateQuizRequest
				return ctx.ShouldBindJSON(&req)
			}, tt.body)
			if ok != tt.wantOK {
				t.Errorf("accepted = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}

func TestUpdateQuizRequestValidation(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		wantOK bool
	}{
		{"patch without questions", `{"title":"Renamed"}`, true},
		{
			"replacement questions validated",
			`{"questions":[{"questionText":"2+2?","questionType":"short-answer","correctAnswer":"4"}]}`,
			true,
		},
		{
			"replacement question missing correct answer",
			`{"questions":[{"questionText":"2+2?","questionType":"short-answer"}]}`,
			false,
		},
		{
			"replacement question with unknown type",
			`{"questions":[{"questionText":"2+2?","questionType":"essay","correctAnswer":"4"}]}`,
			false,
		},
		{"unknown subject", `{"subject":"Alchemy"}`, false},
		{"grade out of range", `{"grade":"0"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok := bindJSON(t, func(ctx *gin.Context) error {
				var req UpdateQuizRequest
				return ctx.ShouldBindJSON(&req)
			}, tt.body)
			if ok != tt.wantOK {
				t.Errorf("accepted = %v, want %v", ok, tt.wantOK)
			}
		})
	}
}
