package salary

// Increase thresholds, in percent over current salary.
const (
	significantIncreasePct = 50
	reasonableIncreasePct  = 25
)

var closingTips = []string{
	"Research the company's compensation philosophy and recent funding rounds.",
	"Practice your negotiation conversation with specific talking points.",
	"Consider the total package: base salary, bonuses, equity, and benefits.",
}

// StrategiesFor derives negotiation advice from the gap between the current
// and predicted salary. Pure function of its inputs.
func StrategiesFor(current, predicted float64) []string {
	if current <= 0 {
		return nil
	}
	increasePct := (predicted - current) / current * 100

	var strategies []string
	switch {
	case increasePct > significantIncreasePct:
		strategies = append(strategies,
			"Your target represents a significant increase. Focus on demonstrating new skills and value you bring.",
			"Consider a phased approach: ask for 70% of the increase now, with the rest tied to performance reviews.",
		)
	case increasePct > reasonableIncreasePct:
		strategies = append(strategies,
			"This is a reasonable increase. Emphasize your experience and market value.",
			"Be prepared with specific examples of your achievements and how they translate to business value.",
		)
	default:
		strategies = append(strategies,
			"This is a modest increase. You have strong negotiating power.",
			"Consider asking for additional benefits like flexible work arrangements or professional development budget.",
		)
	}

	return append(strategies, closingTips...)
}
