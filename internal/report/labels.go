package report

import "github.com/rshade/ecotrack/internal/greenops"

// labels are the headings of both export formats.
type labels struct {
	summary, activities, categories, trend, greenIT, transactions string

	monthCarbon, monthEnergy, savings, ecoScore, goal, goalUsage, level, xp, streak string
	equivalency                                                                     string

	date, category, description, value, unit, carbon, sample string
	month, energy, cost, efficiency, quality, slot, id, when string
	totals, generated, placeholderNote                       string
}

//nolint:gochecknoglobals // Fixed heading tables.
var labelSets = map[greenops.Locale]labels{
	greenops.LocaleFrench: {
		summary: "Synthèse", activities: "Activités", categories: "Catégories",
		trend: "Tendance", greenIT: "Green IT", transactions: "Transactions",

		monthCarbon: "Empreinte du mois (kg CO2)", monthEnergy: "Énergie du mois (kWh)",
		savings: "Économies (kg CO2)", ecoScore: "Score éco", goal: "Objectif mensuel (kg CO2)",
		goalUsage: "Objectif utilisé (%)", level: "Niveau", xp: "XP", streak: "Série (jours)",
		equivalency: "Équivalence",

		date: "Date", category: "Catégorie", description: "Description", value: "Valeur",
		unit: "Unité", carbon: "Carbone (kg CO2)", sample: "Exemple",
		month: "Mois", energy: "Énergie (kWh/mois)", cost: "Coût", efficiency: "Efficacité",
		quality: "Qualité", slot: "Poste", id: "Identifiant", when: "Horodatage",
		totals: "Total", generated: "Généré le",
		placeholderNote: "Valeurs d'exemple, aucune donnée réelle",
	},
	greenops.LocaleEnglish: {
		summary: "Summary", activities: "Activities", categories: "Categories",
		trend: "Trend", greenIT: "Green IT", transactions: "Transactions",

		monthCarbon: "Monthly footprint (kg CO2)", monthEnergy: "Monthly energy (kWh)",
		savings: "Savings (kg CO2)", ecoScore: "Eco score", goal: "Monthly goal (kg CO2)",
		goalUsage: "Goal used (%)", level: "Level", xp: "XP", streak: "Streak (days)",
		equivalency: "Equivalency",

		date: "Date", category: "Category", description: "Description", value: "Value",
		unit: "Unit", carbon: "Carbon (kg CO2)", sample: "Sample",
		month: "Month", energy: "Energy (kWh/month)", cost: "Cost", efficiency: "Efficiency",
		quality: "Quality", slot: "Slot", id: "ID", when: "Timestamp",
		totals: "Total", generated: "Generated",
		placeholderNote: "Sample values, no real data",
	},
}

func labelsFor(loc greenops.Locale) labels {
	if l, ok := labelSets[loc]; ok {
		return l
	}
	return labelSets[greenops.DefaultLocale]
}
