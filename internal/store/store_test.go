package store

import (
	"reflect"
	"strings"
	"testing"

	"needsleads/pkg/types"
)

func TestNeedsQueryFilters(t *testing.T) {
	query, args, err := needsQuery(types.NeedFilters{
		Category: "legal-services",
		Status:   types.NeedStatusHasLeads,
		Search:   "lawyer",
		Limit:    50,
		Offset:   100,
	}).ToSql()
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"n.id, n.title, n.original_text",
		"COUNT(l.id)::int AS leads_count",
		"FROM needs n LEFT JOIN categories c ON n.category_id = c.id LEFT JOIN leads l ON n.id = l.need_id",
		"c.slug = $1",
		"n.status = $2",
		"n.title ILIKE $3",
		"GROUP BY n.id, c.name, c.slug",
		"ORDER BY n.date_of_need DESC, n.id ASC",
		"LIMIT 50 OFFSET 100",
	} {
		if !strings.Contains(query, want) {
			t.Errorf("query missing %q:\n%s", want, query)
		}
	}

	wantArgs := []any{"legal-services", "Has Leads", "%lawyer%"}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %#v, want %#v", args, wantArgs)
	}
}

func TestNeedsQueryWithoutFilters(t *testing.T) {
	query, args, err := needsQuery(types.NeedFilters{Limit: 50}).ToSql()
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(query, "WHERE") {
		t.Errorf("unexpected WHERE clause:\n%s", query)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestNeedColumnsMatchTable(t *testing.T) {
	want := []string{"id", "title", "original_text", "category_id", "date_of_need", "status", "created_at"}
	if !reflect.DeepEqual(needColumns, want) {
		t.Errorf("needColumns = %v, want %v", needColumns, want)
	}
}
