package controllers

import (
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dripgate/dripgate/app/models"
	"github.com/dripgate/dripgate/app/repository"
)

const topContentLimit = 5

type contentEngagement struct {
	ContentID uint   `json:"content_id"`
	Title     string `json:"title"`
	DayOffset int    `json:"day_offset"`
	Likes     int    `json:"likes"`
	Notes     int    `json:"notes"`
}

// HandleAdminStats aggregates the dashboard numbers: subscriber counts,
// revenue, renewal retention cohorts and the most engaged content.
func HandleAdminStats(c *fiber.Ctx) error {
	repos := repository.GetGlobalRepositories()
	now := time.Now().UTC()

	totalUsers, err := repos.User.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	catalogSize, err := repos.Content.Count()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	totalRevenue, err := repos.Payment.TotalSucceededCents()
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	revenueByDay, err := repos.Payment.RevenueByDay(now.AddDate(0, 0, -30))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	retention, err := retentionCohorts(repos.User, now)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	topContent, err := topContentByEngagement(repos.Content, repos.Interaction)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "internal_server_error", "Failed to load stats")
	}

	return c.JSON(fiber.Map{
		"total_users":         totalUsers,
		"catalog_size":        catalogSize,
		"total_revenue_cents": totalRevenue,
		"revenue_by_day":      revenueByDay,
		"retention":           retention,
		"top_content":         topContent,
	})
}

// retentionCohorts computes month-over-month renewal retention. A user
// belongs to cohort Mn when their account is at least n subscription
// periods old; they count as retained when they renewed at least n times
// beyond the initial purchase.
func retentionCohorts(users repository.UserRepository, now time.Time) ([]fiber.Map, error) {
	cohorts := make([]fiber.Map, 0, 3)
	for month := 1; month <= 3; month++ {
		cutoff := now.Add(-time.Duration(month) * models.SubscriptionPeriod)

		eligible, err := users.CountCreatedBefore(cutoff)
		if err != nil {
			return nil, err
		}
		retained, err := users.CountRetained(cutoff, month+1)
		if err != nil {
			return nil, err
		}

		rate := 0.0
		if eligible > 0 {
			rate = float64(retained) / float64(eligible)
		}
		cohorts = append(cohorts, fiber.Map{
			"month":    month,
			"eligible": eligible,
			"retained": retained,
			"rate":     rate,
		})
	}
	return cohorts, nil
}

func topContentByEngagement(catalog repository.ContentRepository, interactions repository.InteractionRepository) ([]contentEngagement, error) {
	entries, err := catalog.GetAllOrdered()
	if err != nil {
		return nil, err
	}

	ranked := make([]contentEngagement, 0, len(entries))
	for i := range entries {
		list, err := interactions.ListByContent(entries[i].ID)
		if err != nil {
			return nil, err
		}

		likes, notes := 0, 0
		for j := range list {
			if list[j].Liked {
				likes++
			}
			if list[j].HasNote() {
				notes++
			}
		}
		ranked = append(ranked, contentEngagement{
			ContentID: entries[i].ID,
			Title:     entries[i].Title,
			DayOffset: entries[i].DayOffset,
			Likes:     likes,
			Notes:     notes,
		})
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].Likes+ranked[a].Notes > ranked[b].Likes+ranked[b].Notes
	})
	if len(ranked) > topContentLimit {
		ranked = ranked[:topContentLimit]
	}
	return ranked, nil
}
