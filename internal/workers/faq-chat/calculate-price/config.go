package calculateprice

const (
	// Warning is attached to every quote.
	Warning = "⚠️ Attention : Ce calcul est basé sur les informations fournies. " +
		"Il peut contenir des erreurs si des détails sont manquants ou mal compris."

	officialPricesPrefix = "Tarifs officiels : 👉 "

	noChildrenLabel = "Aucun enfant précisé"
)
