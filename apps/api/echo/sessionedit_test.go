package echoapi

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/sessionbook/core"
	"github.com/trezcool/sessionbook/core/user"
)

func Test_sessionEditApi_create(t *testing.T) {
	app := setup(t)

	tests := []httpTest{
		{
			name: "Auth required", token: "-", wantCode: http.StatusUnauthorized,
			body: []byte(`{"supervisor_id": 1, "supervisor_email": "s@acme.test", "client_id": 2, "client_email": "c@acme.test", "date": "2024-05-01", "request": "move"}`),
		},
		{
			name: "Session need not exist",
			body: []byte(`{"session_id": 12, "supervisor_id": 1, "supervisor_email": "s@acme.test", "client_id": 2,
				"client_email": "c@acme.test", "date": "2024-05-01", "request": " move to friday "}`),
			wantData: []byte(`{"id": 1, "session_id": 12, "school_id": null, "supervisor_id": 1, "supervisor_email": "s@acme.test",
				"client_id": 2, "client_email": "c@acme.test", "date": "2024-05-01", "request": "move to friday", "additional_info": null}`),
		},
		{
			name: "Request is required", wantCode: http.StatusBadRequest,
			body:     []byte(`{"supervisor_id": 1, "supervisor_email": "s@acme.test", "client_id": 2, "client_email": "c@acme.test", "date": "2024-05-01"}`),
			wantData: []byte(`{"request": "this field is required"}`),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodPost
		tests[i].path = "/session_edits"
	}
	runHTTPTests(t, app, tests)
}

func Test_sessionEditApi_query(t *testing.T) {
	app := setup(t)
	acme := createSchool(t, "Acme", "acme.test")
	beta := createSchool(t, "Beta", "beta.test")
	sup1 := createUser(t, "sup1@acme.test", user.AccountSupervisor, null.Int64{})
	sup2 := createUser(t, "sup2@beta.test", user.AccountSupervisor, null.Int64{})
	cli := createUser(t, "cli@acme.test", user.AccountClient, null.Int64{})

	acmeSession := createSession(t, null.Int64From(acme.ID), sup1, cli, core.NewDate(2024, time.May, 1))

	// own school
	e1 := createSessionEdit(t, null.Int64{}, null.Int64From(acme.ID), sup1, cli, core.NewDate(2024, time.May, 3), "new")
	// school through the referenced session
	e2 := createSessionEdit(t, null.Int64From(acmeSession.ID), null.Int64{}, sup1, cli, core.NewDate(2024, time.May, 2), "move")
	// other school, dangling session
	e3 := createSessionEdit(t, null.Int64From(99), null.Int64From(beta.ID), sup2, cli, core.NewDate(2024, time.May, 4), "cancel")

	empty := marchallList(t)
	acmePath := "/session_edits/by-school/" + strconv.FormatInt(acme.ID, 10)

	tests := []httpTest{
		{name: "Auth required", path: "/session_edits", token: "-", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Get all", path: "/session_edits", wantData: marchallList(t, e1, e2, e3)},
		{name: "order by -date", path: "/session_edits?ordering=-date", wantData: marchallList(t, e3, e1, e2)},
		{name: "by supervisor", path: "/session_edits/by-supervisor/sup1@acme.test", wantData: marchallList(t, e1, e2)},
		{name: "by client", path: "/session_edits/by-client/cli@acme.test", wantData: marchallList(t, e1, e2, e3)},
		{name: "by unknown client", path: "/session_edits/by-client/nobody@acme.test", wantData: empty},
		{name: "by escaped supervisor", path: "/session_edits/by-supervisor/sup1%40acme.test", wantData: marchallList(t, e1, e2)},
		{name: "by escaped client", path: "/session_edits/by-client/cli%40acme.test", wantData: marchallList(t, e1, e2, e3)},
		{name: "by school (own or session's)", path: acmePath, wantData: marchallList(t, e1, e2)},
		{name: "by school ordered", path: acmePath + "?ordering=date", wantData: marchallList(t, e2, e1)},
		{name: "by other school", path: "/session_edits/by-school/" + strconv.FormatInt(beta.ID, 10), wantData: marchallList(t, e3)},
		{name: "by unknown school", path: "/session_edits/by-school/99", wantData: empty},
		{name: "Get by id", path: "/session_edits/3", wantData: marchallObj(t, e3)},
		{
			name: "Not found", path: "/session_edits/42", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "Session Edit not found"}),
		},
	}
	for i := range tests {
		tests[i].method = http.MethodGet
	}
	runHTTPTests(t, app, tests)
}

func Test_sessionEditApi_updateAndDestroy(t *testing.T) {
	app := setup(t)
	sup := createUser(t, "sup@acme.test", user.AccountSupervisor, null.Int64{})
	cli := createUser(t, "cli@acme.test", user.AccountClient, null.Int64{})
	createSessionEdit(t, null.Int64From(1), null.Int64{}, sup, cli, core.NewDate(2024, time.May, 2), "move")

	runHTTPTests(t, app, []httpTest{
		{
			name: "Replace", method: http.MethodPut, path: "/session_edits/1",
			body: []byte(`{"supervisor_id": 1, "supervisor_email": "sup@acme.test", "client_id": 2, "client_email": "cli@acme.test",
				"date": "2024-05-03", "request": "move again", "additional_info": "sorry"}`),
			wantData: []byte(`{"id": 1, "session_id": null, "school_id": null, "supervisor_id": 1, "supervisor_email": "sup@acme.test",
				"client_id": 2, "client_email": "cli@acme.test", "date": "2024-05-03", "request": "move again", "additional_info": "sorry"}`),
		},
		{
			name: "Replace unknown", method: http.MethodPut, path: "/session_edits/9", wantCode: http.StatusNotFound,
			body: []byte(`{"supervisor_id": 1, "supervisor_email": "sup@acme.test", "client_id": 2, "client_email": "cli@acme.test",
				"date": "2024-05-03", "request": "move again"}`),
			wantData: marchallObj(t, httpErr{Error: "Session Edit not found"}),
		},
		{name: "Delete", method: http.MethodDelete, path: "/session_edits/1", wantData: marchallObj(t, MessageResponse{Message: "Session Edit deleted"})},
		{name: "Gone", method: http.MethodGet, path: "/session_edits/1", wantCode: http.StatusNotFound},
	})
}
