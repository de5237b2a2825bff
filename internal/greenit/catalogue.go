package greenit

// Practice is an entry of the static Green IT best-practice catalogue.
type Practice struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Savings     string `json:"savings"`
	Complexity  string `json:"complexity"`
	Icon        string `json:"icon"`
}

// Catalogue returns the best-practice recommendations shown on the
// recommendations page. The list is static and independent of any calculation.
func Catalogue() []Practice {
	return []Practice{
		{
			Title:       "Migration vers le Cloud Vert",
			Category:    "Infrastructure",
			Description: "Migrez vos workloads vers des fournisseurs cloud utilisant 100% d'énergie renouvelable.",
			Impact:      "high",
			Savings:     "60-80% CO₂",
			Complexity:  "medium",
			Icon:        "cloud",
		},
		{
			Title:       "Optimisation des Serveurs",
			Category:    "Data Center",
			Description: "Consolidez vos serveurs et utilisez la virtualisation pour améliorer l'efficacité.",
			Impact:      "high",
			Savings:     "30-50% énergie",
			Complexity:  "medium",
			Icon:        "server",
		},
		{
			Title:       "Refroidissement Liquide",
			Category:    "Data Center",
			Description: "Remplacez le refroidissement par air par un système de refroidissement liquide.",
			Impact:      "medium",
			Savings:     "20-30% énergie",
			Complexity:  "hard",
			Icon:        "snowflake",
		},
		{
			Title:       "Green Coding",
			Category:    "Développement",
			Description: "Adoptez des pratiques de développement éco-responsable et optimisez votre code.",
			Impact:      "medium",
			Savings:     "15-25% énergie",
			Complexity:  "easy",
			Icon:        "code",
		},
		{
			Title:       "Monitoring Énergétique",
			Category:    "Monitoring",
			Description: "Implémentez un système de monitoring en temps réel de la consommation énergétique.",
			Impact:      "low",
			Savings:     "10-15% énergie",
			Complexity:  "easy",
			Icon:        "chart-line",
		},
		{
			Title:       "Équipements Réseau Efficaces",
			Category:    "Réseau",
			Description: "Remplacez les équipements réseau anciens par des modèles plus efficaces énergétiquement.",
			Impact:      "medium",
			Savings:     "25-40% énergie réseau",
			Complexity:  "medium",
			Icon:        "network-wired",
		},
	}
}
