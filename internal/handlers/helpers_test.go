// helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_flight_academy/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// httpRequestDetails はHTTPリクエストの送信に必要な情報をまとめます。
type httpRequestDetails struct {
	Method  string
	Path    string
	Body    interface{}
	Headers map[string]string
}

// httpResponseExpectations はHTTPレスポンスの検証に必要な期待値をまとめます。
type httpResponseExpectations struct {
	ExpectedCode      int
	ExpectedErrorCode string
}

// sendRequest はHTTPリクエストを送信し、ステータスコードを検証してボディを返します。
func sendRequest(t *testing.T, server *httptest.Server, details httpRequestDetails, expectations httpResponseExpectations) []byte {
	t.Helper()

	var reqBodyReader io.Reader
	if details.Body != nil {
		if strPayload, ok := details.Body.(string); ok {
			reqBodyReader = strings.NewReader(strPayload)
		} else {
			reqBodyBytes, err := json.Marshal(details.Body)
			require.NoError(t, err, "Failed to marshal request body")
			reqBodyReader = bytes.NewBuffer(reqBodyBytes)
		}
	}

	req, err := http.NewRequest(details.Method, server.URL+details.Path, reqBodyReader)
	require.NoError(t, err, "Failed to create request")
	if reqBodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range details.Headers {
		req.Header.Set(key, value)
	}

	resp, err := server.Client().Do(req)
	require.NoError(t, err, "Failed to execute request")
	defer resp.Body.Close()

	respBodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "Failed to read response body")

	assert.Equal(t, expectations.ExpectedCode, resp.StatusCode, "Status code mismatch: %s", string(respBodyBytes))
	if expectations.ExpectedErrorCode != "" {
		verifyErrorResponse(t, respBodyBytes, expectations.ExpectedErrorCode)
	}
	return respBodyBytes
}

// verifyErrorResponse はエラーレスポンスのコードを検証します。
func verifyErrorResponse(t *testing.T, bodyBytes []byte, expectedCode string) {
	t.Helper()
	var errResp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(bodyBytes, &errResp), "body: %s", string(bodyBytes))
	assert.Equal(t, expectedCode, errResp.Error.Code)
	assert.NotEmpty(t, errResp.Error.Message)
}

func decodeJSON[T any](t *testing.T, body []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(body, &v), "body: %s", string(body))
	return v
}

func userHeader(id uuid.UUID) map[string]string {
	return map[string]string{"X-User-ID": id.String()}
}
