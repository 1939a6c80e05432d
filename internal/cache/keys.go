package cache

import (
	"fmt"
	"strings"
)

// Key builders for the pg_* namespace. Keys are deterministic functions of
// the operation name and its lookup parameter; the format is shared with the
// previous generation of the stack, so the literal prefixes must not change.

func ServiceKey(id int64) string          { return fmt.Sprintf("pg_service_%d", id) }
func ServicesKey() string                 { return "pg_services" }
func ServiceBySlugKey(slug string) string { return "pg_getservicebyslug_" + strings.ToLower(slug) }
func SearchServiceKey(name string) string { return "pg_searchservicebyname_" + strings.ToLower(name) }
func ServiceExistsKey(id int64) string    { return fmt.Sprintf("pg_serviceexists_%d", id) }

func PointsKey() string                  { return "pg_points" }
func PointsByServiceKey(id int64) string { return fmt.Sprintf("pg_pointsbyservice_%d", id) }
func PointExistsKey(id int64) string     { return fmt.Sprintf("pg_pointexists_%d", id) }

func DocumentsByServiceKey(id int64) string { return fmt.Sprintf("pg_getdocumentbyservice_%d", id) }

func CaseKey(id int64) string  { return fmt.Sprintf("pg_case_%d", id) }
func CasesKey() string         { return "pg_cases" }
func TopicKey(id int64) string { return fmt.Sprintf("pg_topic_%d", id) }
func TopicsKey() string        { return "pg_topics" }

// ExportKey caches one assembled export per (service, shape version).
func ExportKey(id int64, version int) string {
	return fmt.Sprintf("pg_generateapifiles_%d_%d", id, version)
}
