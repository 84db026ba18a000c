package daily

import (
	"testing"
	"time"

	"coinbot/bot/common"
	"coinbot/domain/interfaces"

	"github.com/stretchr/testify/assert"
)

func TestCreateGrantEmbed(t *testing.T) {
	t.Run("first grant", func(t *testing.T) {
		embed := CreateGrantEmbed("alice", &interfaces.GrantResult{Granted: 20000, NewBalance: 20000, FirstGrant: true})

		assert.Contains(t, embed.Title, "first coins")
		assert.Contains(t, embed.Description, "20,000 coins")
		assert.Equal(t, "alice | 20,000 coins", embed.Footer.Text)
	})

	t.Run("returning user", func(t *testing.T) {
		embed := CreateGrantEmbed("bob", &interfaces.GrantResult{Granted: 20000, NewBalance: 45000})

		assert.Equal(t, common.ColorSuccess, embed.Color)
		assert.Equal(t, "bob | 45,000 coins", embed.Footer.Text)
	})
}

func TestCreateAlreadyClaimedEmbed(t *testing.T) {
	reset := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

	embed := CreateAlreadyClaimedEmbed(reset)

	assert.Contains(t, embed.Description, "<t:1704207600:R>")
}
