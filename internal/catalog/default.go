package catalog

// Prices are quoted strings so they decode into decimal without a float detour.
const defaultCatalogTOML = `# DrogaFarm storefront catalog

[[item]]
id = 1
name = "Dipirona 500mg"
price = "8.90"
original_price = "12.50"

[[item]]
id = 2
name = "Vitamina C 1g"
price = "15.90"
original_price = "22.00"

[[item]]
id = 3
name = "Protetor Solar FPS 60"
price = "35.90"
original_price = "49.90"

[[vendor]]
id = 1
name = "Farmácia Central"
distance_km = 0.5
rating = 4.8

[[vendor]]
id = 2
name = "Drogaria Popular"
distance_km = 1.2
rating = 4.6

[[vendor]]
id = 3
name = "Farmácia Saúde"
distance_km = 2.1
rating = 4.7

[[payment]]
id = 1
name = "Cartão de Crédito"
icon = "💳"

[[payment]]
id = 2
name = "PIX"
icon = "📱"

[[payment]]
id = 3
name = "Dinheiro"
icon = "💵"
`
