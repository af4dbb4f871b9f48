package classifyintent

// DefaultKeywords is the keyword table for the six supported languages.
// Keywords are matched on whole words after case and accent folding; a
// trailing "*" matches any word starting with the stem.
var DefaultKeywords = Table{
	TagSchedule: {
		"fr": {"horaire*", "ouvert*", "ouvre", "ouverture*", "ferme", "fermee", "fermeture*", "heure d ouverture", "derniere montee"},
		"en": {"open", "opening*", "opens", "hours", "schedule*", "closed", "closing*"},
		"de": {"offnungszeit*", "geoffnet", "offen", "geschlossen", "uhrzeit*"},
		"es": {"horario*", "abierto", "abre", "cerrado", "apertura"},
		"pt": {"horario*", "aberto", "abre", "fechado", "funcionamento"},
		"nl": {"openingstijd*", "geopend", "gesloten", "openingsuren"},
	},
	TagPrice: {
		"fr": {"tarif*", "prix", "cout*", "coute*", "payer", "payant*", "billet*", "gratuit*", "euro", "euros"},
		"en": {"price*", "pricing", "cost*", "ticket*", "fee", "fees", "how much", "admission"},
		"de": {"preis*", "kosten*", "kostet", "eintritt*", "eintrittskarte*"},
		"es": {"precio*", "tarifa*", "cuesta*", "cuanto cuesta", "entrada*", "billete*"},
		"pt": {"preco*", "tarifa*", "custa*", "bilhete*", "ingresso*"},
		"nl": {"prijs*", "prijzen", "kost", "kosten", "toegangsprijs*", "kaartje*"},
	},
	TagPet: {
		"fr": {"chien*", "toutou*", "cabot*", "canide*", "chat", "chats", "minou*", "felin*", "animal", "animaux"},
		"en": {"dog*", "cat", "cats", "kitty", "pet", "pets", "puppy", "puppies"},
		"de": {"hund*", "katze*", "haustier*", "tier", "tiere"},
		"es": {"perro*", "gato*", "mascota*", "animales"},
		"pt": {"cachorro*", "cao", "caes", "animais", "estimacao"},
		"nl": {"hond*", "kat", "katten", "huisdier*", "dieren"},
	},
	TagParking: {
		"fr": {"parking*", "stationn*", "garer", "gare", "voiture*"},
		"en": {"park", "car park", "car", "cars"},
		"de": {"parkplatz*", "parken", "parkhaus", "auto"},
		"es": {"aparcamiento*", "aparcar", "estacionamiento*", "coche*"},
		"pt": {"estacionamento*", "estacionar", "carro*"},
		"nl": {"parkeren", "parkeerplaats*", "parkeergarage*"},
	},
}
