package cache

import "testing"

func TestKeys_Format(t *testing.T) {
	t.Parallel()

	cases := []struct {
		got  string
		want string
	}{
		{ServiceKey(182), "pg_service_182"},
		{ServicesKey(), "pg_services"},
		{ServiceBySlugKey("DuckDuckGo"), "pg_getservicebyslug_duckduckgo"},
		{SearchServiceKey("Spotify"), "pg_searchservicebyname_spotify"},
		{ServiceExistsKey(7), "pg_serviceexists_7"},
		{PointsKey(), "pg_points"},
		{PointsByServiceKey(182), "pg_pointsbyservice_182"},
		{PointExistsKey(9001), "pg_pointexists_9001"},
		{DocumentsByServiceKey(182), "pg_getdocumentbyservice_182"},
		{CaseKey(3), "pg_case_3"},
		{CasesKey(), "pg_cases"},
		{TopicKey(12), "pg_topic_12"},
		{TopicsKey(), "pg_topics"},
		{ExportKey(182, 3), "pg_generateapifiles_182_3"},
	}

	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("key mismatch: got %q, want %q", tc.got, tc.want)
		}
	}
}
