package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/jhoicas/smartsales-api/docs"
)

func TestSwaggerInfo_RegistradoYValido(t *testing.T) {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var spec struct {
		Swagger string                     `json:"swagger"`
		Paths   map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &spec))
	assert.Equal(t, "2.0", spec.Swagger)
	for _, p := range []string{"/api/dashboard", "/api/sales", "/api/products/restock", "/api/chat", "/api/reports/sales.pdf"} {
		assert.Contains(t, spec.Paths, p)
	}
}
