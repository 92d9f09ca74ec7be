package guardrails

// Vocabularies are written in folded form (lower-case, no diacritics, words
// separated by single spaces) because they are matched against
// textfold.Words output.

// poeTerms signal the intended Path of Exile build domain.
var poeTerms = []string{
	"path of exile", "poe", "poe2", "atlas", "atlas tree", "atlas passive",
	"chaos orb", "chaos orbs", "exalted orb", "divine orb", "divine orbs",
	"orb of alchemy", "orb of fusing", "orb of alteration", "orb of scouring",
	"vaal orb", "mirror of kalandra", "jeweller", "chromatic orb",
	"mapper", "mapping", "maps", "map sustain", "boss", "bosses", "bossing",
	"pinnacle", "uber",
	"league start", "league starter", "ascendancy", "ascendant", "passive tree",
	"skill tree", "skill gem", "support gem", "support gems", "gem links",
	"six link", "6 link", "5 link", "flask", "flasks", "unique", "uniques",
	"aura", "auras", "curse", "curses", "minion", "minions", "totem", "totems",
	"trap", "traps", "mine", "mines", "crit", "critical strike", "dps",
	"energy shield", "evasion", "armour", "resistances", "resists",
	"spell suppression", "block chance", "life leech", "cluster jewel",
	"jewel", "jewels", "keystone", "notable", "pantheon", "labyrinth",
	"hardcore", "ssf", "trade league", "delirium", "breach", "legion",
	"expedition", "sanctum", "heist", "ritual", "blight", "essence", "fossil",
	"scarab", "scarabs", "voidstone", "maven", "sirus", "shaper", "elder",
	"exarch", "eater of worlds", "uber elder", "kitava", "campaign",
	"necromancer", "juggernaut", "deadeye", "hierophant", "occultist",
	"trickster", "inquisitor", "champion", "berserker", "elementalist",
	"pathfinder", "gladiator", "slayer", "chieftain", "assassin", "saboteur",
	"guardian", "raider", "tabula rasa", "goldrim", "wanderlust",
	"righteous fire", "lightning arrow", "tornado shot", "cyclone",
	"boneshatter", "arc", "spark", "vortex", "essence drain", "contagion",
	"summon raging spirit", "herald", "vaal", "corrupted", "awakened",
	"ailment", "ignite", "bleed", "poison", "freeze", "shock", "chill",
	"cast speed", "attack speed", "mana reservation", "spirit", "exile",
	// Portuguese
	"arvore passiva", "gema de habilidade", "gema de suporte", "frasco",
	"frascos", "orbe do caos", "orbe divino", "orbe exaltado", "ascensao",
	"mapas", "chefoes", "inicio de liga",
}

// culinaryTerms belong to the rejected recipe domain the product used to serve.
var culinaryTerms = []string{
	"recipe", "recipes", "ingredient", "ingredients", "cook", "cooking",
	"cooked", "kitchen", "dish", "meal", "dinner", "lunch", "breakfast",
	"dessert", "appetizer", "serving", "servings", "pasta", "spaghetti",
	"tomato", "tomatoes", "olive oil", "garlic", "onion", "onions", "salt",
	"pepper", "butter", "flour", "sugar", "egg", "eggs", "milk", "cream",
	"cheese", "chicken", "beef", "pork", "fish", "rice", "beans", "potato",
	"potatoes", "carrot", "vegetable", "vegetables", "salad", "soup",
	"sauce", "bake", "baking", "baked", "oven", "boil", "simmer", "saute",
	"fry", "fried", "roast", "grill", "stir", "whisk", "chop", "dice",
	"marinate", "preheat", "tablespoon", "teaspoon", "cups",
	"grams", "pinch", "minced", "chopped", "sliced", "frying pan", "skillet",
	"saucepan", "baking sheet", "cutting board", "lemon juice", "vinegar",
	"basil", "oregano", "parsley", "cinnamon", "yeast", "dough", "bread",
	"cake", "cookie", "cookies", "chocolate", "vanilla extract", "broth",
	"stock pot", "tofu", "lentils", "noodles", "sandwich",
	// Portuguese
	"receita", "receitas", "ingrediente", "ingredientes", "cozinhar",
	"cozinha", "prato", "refeicao", "jantar", "almoco", "cafe da manha",
	"sobremesa", "porcao", "porcoes", "macarrao", "tomate", "tomates",
	"azeite", "alho", "cebola", "sal", "pimenta", "manteiga", "farinha",
	"acucar", "ovo", "ovos", "leite", "creme de leite", "queijo", "frango",
	"carne", "peixe", "arroz", "feijao", "batata", "cenoura", "legumes",
	"salada", "sopa", "molho", "assar", "forno", "ferver", "refogar",
	"fritar", "grelhar", "mexa", "pique", "tempere", "preaqueca",
	"colher de sopa", "colher de cha", "xicara", "xicaras", "gramas",
	"pitada", "panela", "frigideira", "massa", "bolo", "pao",
}

// highConfidenceCulinaryTerms cannot plausibly appear in a game build; one
// hit is dispositive.
var highConfidenceCulinaryTerms = []string{
	"olive oil", "tablespoon", "tablespoons", "teaspoon", "teaspoons",
	"preheat the oven", "preheat oven", "frying pan", "baking sheet",
	"cutting board", "vanilla extract", "all purpose flour", "minced garlic",
	"azeite", "azeite de oliva", "colher de sopa", "colher de cha",
	"xicara de cha", "preaqueca o forno", "forno preaquecido", "creme de leite",
	"alho picado", "cebola picada",
}

// culinaryUnits are measurement units only a recipe would carry.
var culinaryUnits = []string{
	"g", "gram", "grams", "kg", "mg", "ml", "l", "liter", "liters", "litre",
	"cl", "dl", "oz", "ounce", "ounces", "lb", "lbs", "pound", "pounds",
	"tbsp", "tsp", "tablespoon", "tablespoons", "teaspoon", "teaspoons",
	"cup", "cups", "pinch", "dash", "clove", "cloves", "slice", "slices",
	"can", "cans", "stick", "sticks",
	"grama", "gramas", "litro", "litros", "xicara", "xicaras", "colher",
	"colheres", "colher de sopa", "colher de cha", "pitada", "dente",
	"dentes", "fatia", "fatias", "lata", "latas", "maco", "ramo",
}
