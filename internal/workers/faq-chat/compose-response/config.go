package composeresponse

const (
	DefaultSiteURL     = "https://phareducapferret.com"
	DefaultScheduleURL = "https://phareducapferret.com/horaires-et-tarifs/"

	DefaultFAQThreshold  = 0.4
	DefaultMaxReplyChars = 450
)

type Config struct {
	SiteURL     string
	ScheduleURL string
	// FAQThreshold is the similarity a FAQ entry must exceed to be used.
	// Zero accepts any match; a negative value selects the default.
	FAQThreshold  float64
	MaxReplyChars int
}

func DefaultConfig() Config {
	return Config{
		SiteURL:       DefaultSiteURL,
		ScheduleURL:   DefaultScheduleURL,
		FAQThreshold:  DefaultFAQThreshold,
		MaxReplyChars: DefaultMaxReplyChars,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.SiteURL == "" {
		c.SiteURL = def.SiteURL
	}
	if c.ScheduleURL == "" {
		c.ScheduleURL = def.ScheduleURL
	}
	if c.FAQThreshold < 0 {
		c.FAQThreshold = def.FAQThreshold
	}
	if c.MaxReplyChars <= 0 {
		c.MaxReplyChars = def.MaxReplyChars
	}
	return c
}

const (
	scheduleRedirect = "Les horaires peuvent varier selon la saison. Consulte la page officielle pour être sûr : 👉 %s"

	pricingSummary = "Le tarif est de **%s€ par adulte** et **%s€ par enfant** (gratuit pour les moins de %d ans, tarif adulte dès %d ans). Retrouve toutes les infos ici 👉 %s"

	childAgesRequest = "Indique l'âge de chaque enfant pour que je puisse calculer le prix exact."

	defaultPetPolicy = "Ahoy, marin d'eau douce ! Les animaux ne sont pas autorisés à entrer dans la tour ni dans le blockhaus. " +
		"Ils peuvent rester dans les espaces extérieurs sous supervision humaine à tout moment."

	defaultParking = "Pour te garer, des parkings se trouvent aux abords du phare et se remplissent vite en été. Toutes les infos pratiques ici 👉 %s"

	childrenNote = "Les enfants sont les bienvenus au Phare, mais ils doivent être accompagnés et surveillés par un adulte."

	greeting = "Ahoy ! Je suis Archibald, le gardien du phare du Cap Ferret. Pose-moi tes questions sur les horaires, les tarifs ou la visite, " +
		"ou retrouve toutes les infos ici 👉 %s"
)
