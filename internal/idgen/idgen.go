package idgen

import (
	"log"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
)

var node *snowflake.Node

func Init() {
	var err error
	node, err = snowflake.NewNode(1)
	if err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}
}

// GenerateID выдаёт числовой идентификатор для приходов и актов раскроя.
func GenerateID() int64 {
	if node == nil {
		Init()
	}
	return node.Generate().Int64()
}

// OrderID builds the composite order-row identifier:
// group + producer slug + random suffix. The producer part keeps rows of
// one group readable in logs and exports.
func OrderID(groupID, producer string) string {
	slug := producerSlug(producer)
	suffix := uuid.NewString()[:8]
	return groupID + "-" + slug + "-" + suffix
}

func producerSlug(producer string) string {
	if producer == "" {
		return "unassigned"
	}
	slug := strings.ToLower(strings.TrimSpace(producer))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}
