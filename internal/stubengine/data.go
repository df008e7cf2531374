package stubengine

import "github.com/guerrasclon/termclient/pkg/types"

// Static reference data, mirroring the real engine's catalog. The
// engine itself serves these from process memory, so the stub does too.

var mundos = []types.Mundo{
	{ID: 1, Nombre: "Kamino", Imagen: "https://static.wikia.nocookie.net/es.starwars/images/5/52/Kamino-TSWB.png"},
	{ID: 2, Nombre: "Coruscant", Imagen: "https://static.wikia.nocookie.net/es.starwars/images/e/e1/Coruscant_Enciclopedia.png"},
	{ID: 3, Nombre: "Naboo", Imagen: "https://static.wikia.nocookie.net/es.starwars/images/0/06/Naboo_Enciclopedia.png"},
}

var personajes = []types.Personaje{
	{ID: "obi", Nombre: "Obi-Wan Kenobi", Tipo: types.TipoHeroe, MundoID: 1, Info: types.InfoPersonaje{Dano: 80, Defensa: 90, AtaqueEspecial: 150}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/3/30/Obi-Wan_Kenobi_Kenobi_series.png"},
	{ID: "cody", Nombre: "Comandante Cody", Tipo: types.TipoHeroe, MundoID: 1, Info: types.InfoPersonaje{Dano: 70, Defensa: 80, AtaqueEspecial: 120}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/2/29/Cody_S3.png"},
	{ID: "shaak", Nombre: "Shaak Ti", Tipo: types.TipoHeroe, MundoID: 1, Info: types.InfoPersonaje{Dano: 75, Defensa: 85, AtaqueEspecial: 140}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/e/e3/Shaak_Ti_sin_sable.png"},
	{ID: "jango", Nombre: "Jango Fett", Tipo: types.TipoVillano, MundoID: 1, Info: types.InfoPersonaje{Dano: 90, Defensa: 70, AtaqueEspecial: 160}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/6/6e/Jango_Fett_BD.png"},
	{ID: "taun", Nombre: "Taun We", Tipo: types.TipoVillano, MundoID: 1, Info: types.InfoPersonaje{Dano: 30, Defensa: 50, AtaqueEspecial: 60}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/3/36/Taun_We_TBB.png"},
	{ID: "lama", Nombre: "Lama Su", Tipo: types.TipoVillano, MundoID: 1, Info: types.InfoPersonaje{Dano: 20, Defensa: 40, AtaqueEspecial: 50}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/a/a9/Lama_Su_TBB.png"},

	{ID: "anakin", Nombre: "Anakin Skywalker", Tipo: types.TipoHeroe, MundoID: 2, Info: types.InfoPersonaje{Dano: 90, Defensa: 80, AtaqueEspecial: 170}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/c/c6/Anakin_Skywalker_perfil.png"},
	{ID: "yoda", Nombre: "Yoda", Tipo: types.TipoHeroe, MundoID: 2, Info: types.InfoPersonaje{Dano: 70, Defensa: 95, AtaqueEspecial: 180}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/1/1d/Yoda_en_su_silla.png"},
	{ID: "padme", Nombre: "Padmé Amidala", Tipo: types.TipoHeroe, MundoID: 2, Info: types.InfoPersonaje{Dano: 60, Defensa: 60, AtaqueEspecial: 110}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/a/a2/Padme_Amidala_perfil.png"},
	{ID: "palpatine", Nombre: "Palpatine", Tipo: types.TipoVillano, MundoID: 2, Info: types.InfoPersonaje{Dano: 80, Defensa: 80, AtaqueEspecial: 200}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/6/68/Palpatine_sith.png"},
	{ID: "cad", Nombre: "Cad Bane", Tipo: types.TipoVillano, MundoID: 2, Info: types.InfoPersonaje{Dano: 85, Defensa: 60, AtaqueEspecial: 150}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/c/c5/Cad_Bane_TBB_Perfil.png"},
	{ID: "mas", Nombre: "Mas Amedda", Tipo: types.TipoVillano, MundoID: 2, Info: types.InfoPersonaje{Dano: 10, Defensa: 30, AtaqueEspecial: 20}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/d/d5/Mas_Amedda_SWE.png"},

	{ID: "quigon", Nombre: "Qui-Gon Jinn", Tipo: types.TipoHeroe, MundoID: 3, Info: types.InfoPersonaje{Dano: 75, Defensa: 85, AtaqueEspecial: 145}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/7/7e/Qui-Gon_Jinn_perfil.png"},
	{ID: "jarjar", Nombre: "Jar Jar Binks", Tipo: types.TipoHeroe, MundoID: 3, Info: types.InfoPersonaje{Dano: 50, Defensa: 70, AtaqueEspecial: 100}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/8/8f/Jar_Jar_Binks_perfil.png"},
	{ID: "nass", Nombre: "Jefe Nass", Tipo: types.TipoHeroe, MundoID: 3, Info: types.InfoPersonaje{Dano: 40, Defensa: 60, AtaqueEspecial: 70}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/f/f3/BossNass-TatooineTrip.png"},
	{ID: "maul", Nombre: "Darth Maul", Tipo: types.TipoVillano, MundoID: 3, Info: types.InfoPersonaje{Dano: 95, Defensa: 75, AtaqueEspecial: 175}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/b/b2/Darth_Maul_perfil.png"},
	{ID: "nute", Nombre: "Nute Gunray", Tipo: types.TipoVillano, MundoID: 3, Info: types.InfoPersonaje{Dano: 20, Defensa: 40, AtaqueEspecial: 30}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/b/b0/Nute_Gunray_perfil.png"},
	{ID: "droide", Nombre: "Droide de Batalla", Tipo: types.TipoVillano, MundoID: 3, Info: types.InfoPersonaje{Dano: 50, Defensa: 30, AtaqueEspecial: 50}, Imagen: "https://static.wikia.nocookie.net/es.starwars/images/9/9b/B1_batdroid.png"},
}

func personajeByID(id string) (types.Personaje, bool) {
	for _, p := range personajes {
		if p.ID == id {
			return p, true
		}
	}
	return types.Personaje{}, false
}

func mundoByID(id int) (types.Mundo, bool) {
	for _, m := range mundos {
		if m.ID == id {
			return m, true
		}
	}
	return types.Mundo{}, false
}

func rosterForMundo(mundoID int) types.Roster {
	r := types.Roster{Heroes: []types.Personaje{}, Villanos: []types.Personaje{}}
	for _, p := range personajes {
		if p.MundoID != mundoID {
			continue
		}
		if p.Tipo == types.TipoHeroe {
			r.Heroes = append(r.Heroes, p)
		} else {
			r.Villanos = append(r.Villanos, p)
		}
	}
	return r
}
