package contracts

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"property-service/schemas"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	PropertyRequest       = "PropertyRequest"
	PropertyUpdateRequest = "PropertyUpdateRequest"

	SchemaVersionV1 = "1.0.0"
)

// каталог схем -> суффикс ключа
var schemaRoots = map[string]string{
	"events":   "Event",
	"requests": "Request",
}

var compiledSchemas = make(map[string]*jsonschema.Schema)

func init() {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	for root := range schemaRoots {
		err := fs.WalkDir(schemas.SchemasFS, root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".json") {
				return nil
			}
			file, err := schemas.SchemasFS.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()
			if err := compiler.AddResource(path, file); err != nil {
				return fmt.Errorf("add schema resource %s: %w", path, err)
			}
			paths = append(paths, path)
			return nil
		})
		if err != nil {
			log.Fatalf("error walking and adding schema resources: %v", err)
		}
	}

	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			log.Fatalf("failed to compile schema %s: %v", path, err)
		}
		key := generateKeyFromPath(path)
		if key == "" {
			log.Printf("WARNING: unexpected schema path %s. Skipping.", path)
			continue
		}
		compiledSchemas[key] = schema
	}
}

// generateKeyFromPath преобразует путь вида "events/property-created/v1.json"
// в ключ вида "PropertyCreatedEvent/1.0.0".
func generateKeyFromPath(path string) string {
	parts := strings.Split(strings.TrimSuffix(path, ".json"), "/")
	if len(parts) != 3 {
		return ""
	}
	suffix, ok := schemaRoots[parts[0]]
	if !ok || !strings.HasPrefix(parts[2], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, p := range strings.Split(parts[1], "-") {
		name.WriteString(caser.String(p))
	}
	name.WriteString(suffix)

	version := strings.TrimPrefix(parts[2], "v") + ".0.0"
	return fmt.Sprintf("%s/%s", name.String(), version)
}

// ValidateEvent принимает тело сообщения и его метаданные и проверяет по схеме
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	return validate(eventType, eventVersion, body)
}

// ValidateRequest проверяет тело входящего запроса
func ValidateRequest(requestType, version string, body []byte) error {
	return validate(requestType, version, body)
}

func validate(name, version string, body []byte) error {
	key := fmt.Sprintf("%s/%s", name, version)
	schema, ok := compiledSchemas[key]
	if !ok {
		return fmt.Errorf("schema '%s' version '%s' not found", name, version)
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}
