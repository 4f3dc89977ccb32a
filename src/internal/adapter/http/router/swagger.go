package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>FD Account Processor API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "FD Account Processor",
    "description": "Fixed deposit account lifecycle engine: account opening, daily interest accrual, interest capitalization and maturity processing.",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "basicAuth": {"type": "http", "scheme": "basic"},
      "operatorKey": {"type": "apiKey", "in": "header", "name": "X-API-Key"}
    }
  },
  "security": [{"basicAuth": []}],
  "paths": {
    "/health": {
      "get": {
        "summary": "Liveness probe",
        "security": [],
        "responses": {"200": {"description": "Service is up"}}
      }
    },
    "/accounts": {
      "post": {
        "summary": "Open a fixed deposit account",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {
            "type": "object",
            "required": ["customerId", "productCode", "principal", "termMonths", "maturityInstruction"],
            "properties": {
              "customerId": {"type": "string"},
              "productCode": {"type": "string", "example": "FD-CUM"},
              "branchCode": {"type": "string", "example": "001"},
              "principal": {"type": "string", "example": "50000.00"},
              "termMonths": {"type": "integer", "example": 12},
              "interestRate": {"type": "string", "example": "7.25"},
              "compoundingFrequency": {"type": "string", "enum": ["MONTHLY", "QUARTERLY", "SEMI_ANNUAL", "ANNUAL"]},
              "maturityInstruction": {"type": "string", "enum": ["HOLD", "CLOSE_AND_PAYOUT", "RENEW_PRINCIPAL_ONLY", "RENEW_WITH_INTEREST", "TRANSFER_TO_SAVINGS", "TRANSFER_TO_CURRENT"]},
              "transferAccount": {"type": "string"},
              "effectiveDate": {"type": "string", "format": "date"}
            }
          }}}
        },
        "responses": {
          "201": {"description": "Account opened"},
          "400": {"description": "Validation failed"},
          "404": {"description": "Customer or product not found"}
        }
      }
    },
    "/accounts/{accountNumber}": {
      "get": {
        "summary": "Fetch an account with its accrued interest",
        "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Account"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/accounts/{accountNumber}/statement": {
      "get": {
        "summary": "Fetch an account with its full transaction history",
        "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Statement"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/accounts/{accountNumber}/premature-withdrawal": {
      "get": {
        "summary": "Quote an indicative premature withdrawal payout",
        "parameters": [{"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Indicative quote, no balances move"},
          "404": {"description": "Account not found"}
        }
      }
    },
    "/calculator/maturity": {
      "post": {
        "summary": "Project interest, TDS and maturity value without an account",
        "requestBody": {
          "required": true,
          "content": {"application/json": {"schema": {
            "type": "object",
            "required": ["principal", "annualRate", "termMonths", "interestMethod"],
            "properties": {
              "principal": {"type": "string", "example": "50000"},
              "annualRate": {"type": "string", "example": "7"},
              "termMonths": {"type": "integer", "example": 12},
              "interestMethod": {"type": "string", "enum": ["SIMPLE", "COMPOUND"]},
              "compoundingFrequency": {"type": "string", "enum": ["MONTHLY", "QUARTERLY", "SEMI_ANNUAL", "ANNUAL"]},
              "tdsApplicable": {"type": "boolean"},
              "tdsRate": {"type": "string", "example": "10"},
              "tdsThreshold": {"type": "string", "example": "40000"}
            }
          }}}
        },
        "responses": {
          "200": {"description": "Calculation with monthly breakdown"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/identifiers": {
      "post": {
        "summary": "Mint an account number (Luhn) or IBAN",
        "requestBody": {
          "content": {"application/json": {"schema": {
            "type": "object",
            "properties": {
              "branchCode": {"type": "string", "example": "002"},
              "strategy": {"type": "string", "enum": ["standard", "iban"]}
            }
          }}}
        },
        "responses": {
          "201": {"description": "Identifier generated"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/identifiers/{accountNumber}/validate": {
      "get": {
        "summary": "Check an identifier's check digits",
        "parameters": [
          {"name": "accountNumber", "in": "path", "required": true, "schema": {"type": "string"}},
          {"name": "strategy", "in": "query", "schema": {"type": "string", "enum": ["standard", "iban"]}}
        ],
        "responses": {"200": {"description": "Validation verdict"}}
      }
    },
    "/batch/accrual": {
      "post": {
        "summary": "Run the daily interest accrual batch",
        "security": [{"basicAuth": [], "operatorKey": []}],
        "responses": {"200": {"description": "Run report"}}
      }
    },
    "/batch/capitalization": {
      "post": {
        "summary": "Run the interest capitalization batch",
        "security": [{"basicAuth": [], "operatorKey": []}],
        "responses": {"200": {"description": "Run report"}}
      }
    },
    "/batch/maturity": {
      "post": {
        "summary": "Run the maturity processing batch",
        "security": [{"basicAuth": [], "operatorKey": []}],
        "responses": {"200": {"description": "Run report"}}
      }
    },
    "/users": {
      "post": {
        "summary": "Create a bank operator and mint their API key",
        "responses": {
          "201": {"description": "User created, API key returned once"},
          "400": {"description": "Validation failed"}
        }
      }
    },
    "/users/{userId}": {
      "delete": {
        "summary": "Deactivate a bank operator",
        "parameters": [{"name": "userId", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "User deactivated"},
          "404": {"description": "User not found"}
        }
      }
    },
    "/branches": {
      "get": {
        "summary": "List branches",
        "responses": {"200": {"description": "Branch catalog"}}
      }
    },
    "/products": {
      "get": {
        "summary": "List FD products",
        "responses": {"200": {"description": "Product catalog"}}
      }
    }
  }
}`
