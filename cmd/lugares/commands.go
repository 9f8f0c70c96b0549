package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sabrinaansede/apphib/internal/client/api"
	"github.com/sabrinaansede/apphib/internal/client/app"
	"github.com/sabrinaansede/apphib/internal/client/navigation"
	"github.com/sabrinaansede/apphib/internal/client/technique"
	"github.com/sabrinaansede/apphib/internal/client/view"
)

func (c *cli) registerCmd() *cobra.Command {
	var req api.RegisterRequest
	cmd := &cobra.Command{
		Use:   "registro",
		Short: "Crea una cuenta e inicia sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathRegister, func(ctx context.Context) error {
				sess, err := c.auth.Register(ctx, req)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(c.out, "Usuario registrado correctamente. Hola, %s.\n", sess.User.Nombre)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Nombre, "nombre", "", "nombre")
	cmd.Flags().StringVar(&req.Email, "email", "", "email")
	cmd.Flags().StringVar(&req.Password, "password", "", "contraseña")
	cmd.Flags().StringVar(&req.Telefono, "telefono", "", "teléfono")
	cmd.Flags().StringVar(&req.TipoUsuario, "tipo", "padre", "tipo de usuario (padre o persona)")
	_ = cmd.MarkFlagRequired("nombre")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathLogin, func(ctx context.Context) error {
				if email == "" || password == "" {
					return fmt.Errorf("email y contraseña son obligatorios")
				}
				if _, err := c.auth.Login(ctx, email, password); err != nil {
					return userError(err)
				}
				fmt.Fprintln(c.out, "Inicio de sesión exitoso")
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email")
	cmd.Flags().StringVar(&password, "password", "", "contraseña")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Cierra la sesión",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathHome, func(context.Context) error {
				if err := c.auth.Logout(); err != nil {
					return err
				}
				fmt.Fprintln(c.out, "Sesión cerrada")
				return nil
			})
		},
	}
}

func (c *cli) mapCmd() *cobra.Command {
	var (
		query, category, region, cert, initial, order string
		minRating                                     float64
		options                                       bool
	)
	cmd := &cobra.Command{
		Use:   "mapa",
		Short: "Lista los lugares con filtros y orden",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathMap, func(ctx context.Context) error {
				if err := c.mapScreen.Load(ctx); err != nil {
					return userError(err)
				}
				if options {
					c.printOptions(c.mapScreen.Options())
					return nil
				}
				c.mapScreen.SetFilters(view.FiltersFromForm(query, category, region, cert, minRating, initial))
				c.mapScreen.SetSort(view.ParseSortKey(order))
				c.printPlaces(c.mapScreen.Current())
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&query, "buscar", "q", "", "texto en nombre, dirección o descripción")
	cmd.Flags().StringVar(&category, "tipo", "", "tipo de lugar")
	cmd.Flags().StringVar(&region, "provincia", "", "provincia")
	cmd.Flags().StringVar(&cert, "cert", "", "certificación (APADEA o Comunidad)")
	cmd.Flags().Float64Var(&minRating, "min-rating", 0, "puntuación promedio mínima")
	cmd.Flags().StringVar(&initial, "inicial", "", "letra inicial del nombre")
	cmd.Flags().StringVar(&order, "orden", string(view.SortDefault), "default, name o rating")
	cmd.Flags().BoolVar(&options, "opciones", false, "muestra los tipos y provincias disponibles para filtrar")
	return cmd
}

func (c *cli) printOptions(categories, regions []string) {
	none := func(xs []string) string {
		if len(xs) == 0 {
			return "-"
		}
		return strings.Join(xs, ", ")
	}
	fmt.Fprintf(c.out, "Tipos: %s\n", none(categories))
	fmt.Fprintf(c.out, "Provincias: %s\n", none(regions))
}

func (c *cli) printPlaces(res view.Result) {
	if len(res.Places) == 0 {
		fmt.Fprintln(c.out, "No hay lugares para mostrar.")
		return
	}
	w := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOMBRE\tDIRECCIÓN\tTIPO\tPROVINCIA\tCERT\tRATING\tVOTOS")
	for i := range res.Places {
		p := &res.Places[i]
		rating := "-"
		if r, ok := res.Ratings[p.ID]; ok {
			rating = fmt.Sprintf("%.1f (%d)", r.Average, r.Count)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			p.ID, p.Nombre, p.Direccion, p.Tipo, p.Provincia, p.Certification(), rating, p.Votos)
	}
	_ = w.Flush()
}

func (c *cli) addPlaceCmd() *cobra.Command {
	var (
		draft    app.PlaceDraft
		lat, lng float64
		tags     string
	)
	cmd := &cobra.Command{
		Use:   "agregar",
		Short: "Agrega un lugar al mapa",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lng") {
				draft.Location = &app.Coordinates{Lat: lat, Lng: lng}
			}
			draft.EtiquetasSensoriales = splitList(tags)
			return c.open(cmd.Context(), navigation.PathMap, func(ctx context.Context) error {
				place, err := c.mapScreen.SubmitPlace(ctx, draft)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(c.out, "Lugar agregado correctamente (%s).\n", place.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&draft.Nombre, "nombre", "", "nombre")
	cmd.Flags().StringVar(&draft.Direccion, "direccion", "", "dirección")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitud")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitud")
	cmd.Flags().StringVar(&draft.Tipo, "tipo", "", "tipo de lugar")
	cmd.Flags().StringVar(&draft.Provincia, "provincia", "", "provincia")
	cmd.Flags().StringVar(&draft.Descripcion, "descripcion", "", "descripción")
	cmd.Flags().StringVar(&tags, "etiquetas", "", "etiquetas sensoriales separadas por coma")
	cmd.Flags().StringVar(&draft.Certificacion, "cert", "", "certificación (APADEA o Comunidad)")
	return cmd
}

func (c *cli) voteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "votar <id-lugar>",
		Short: "Vota un lugar para validarlo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context(), navigation.PathMap, func(ctx context.Context) error {
				place, err := c.mapScreen.Vote(ctx, args[0])
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(c.out, "%s tiene %d votos.\n", place.Nombre, place.Votos)
				return nil
			})
		},
	}
}

func (c *cli) reviewCmd() *cobra.Command {
	var (
		rating    int
		comment   string
		photoPath string
	)
	cmd := &cobra.Command{
		Use:   "resenar <id-lugar>",
		Short: "Deja una reseña con foto opcional",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd.Context(), navigation.PathMap, func(ctx context.Context) error {
				var photo *api.Photo
				if photoPath != "" {
					f, err := c.fs.Open(photoPath)
					if err != nil {
						return fmt.Errorf("no se pudo abrir la foto: %w", err)
					}
					defer f.Close()
					photo = &api.Photo{Name: filepath.Base(photoPath), Body: f}
				}
				review, err := c.mapScreen.SubmitReview(ctx, args[0], rating, comment, photo)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(c.out, "Reseña enviada (%s).\n", review.ID)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&rating, "puntuacion", "p", 0, "puntuación de 1 a 5")
	cmd.Flags().StringVarP(&comment, "comentario", "c", "", "comentario")
	cmd.Flags().StringVar(&photoPath, "foto", "", "ruta a una foto (jpeg, png, gif o webp)")
	return cmd
}

func (c *cli) myReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mis-resenas",
		Short: "Lista tus reseñas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathMyReviews, func(ctx context.Context) error {
				mine, err := c.myReviews.Load(ctx)
				if err != nil {
					return userError(err)
				}
				if len(mine) == 0 {
					fmt.Fprintln(c.out, "Aún no has dejado reseñas.")
					return nil
				}
				for _, r := range mine {
					fmt.Fprintf(c.out, "%s  %d ⭐  %s\n", r.PlaceName, r.Puntuacion, r.CreadoEn.Format("02/01/2006"))
					if r.Comentario != "" {
						fmt.Fprintf(c.out, "  %s\n", r.Comentario)
					}
					if r.PlaceAddress != "" {
						fmt.Fprintf(c.out, "  %s\n", r.PlaceAddress)
					}
				}
				return nil
			})
		},
	}
}

func (c *cli) contactCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contacto",
		Short: "Muestra la página de contacto",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathContact, func(context.Context) error {
				fmt.Fprintln(c.out, "Contacto")
				return nil
			})
		},
	}
}

func (c *cli) techniquesCmd() *cobra.Command {
	var (
		fav   string
		draft technique.Draft
	)
	cmd := &cobra.Command{
		Use:   "tecnicas",
		Short: "Lista las técnicas de autorregulación",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.open(cmd.Context(), navigation.PathHome, func(context.Context) error {
				if draft.Image != "" {
					if _, err := c.catalog.AddCustom(draft); err != nil {
						return err
					}
				}
				if fav != "" {
					if _, ok := c.catalog.Get(fav); !ok {
						return fmt.Errorf("técnica desconocida: %s", fav)
					}
					if c.favorites.Toggle(fav) {
						fmt.Fprintf(c.out, "%s agregada a favoritas.\n", fav)
					} else {
						fmt.Fprintf(c.out, "%s quitada de favoritas.\n", fav)
					}
				}
				for _, card := range c.catalog.Cards() {
					mark := " "
					if c.favorites.Has(card.ID) {
						mark = "★"
					}
					fmt.Fprintf(c.out, "%s %-22s %s\n", mark, card.ID, card.Title)
					fmt.Fprintf(c.out, "  %s [%s]\n", card.Desc, strings.Join(card.Tags, ", "))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&fav, "fav", "", "marca o desmarca una técnica como favorita")
	cmd.Flags().StringVar(&draft.Image, "imagen", "", "imagen para una técnica personalizada")
	cmd.Flags().StringVar(&draft.Title, "titulo", "", "título de la técnica personalizada")
	cmd.Flags().StringVar(&draft.Desc, "desc", "", "descripción de la técnica personalizada")
	cmd.Flags().StringVar(&draft.Tags, "etiquetas", "", "etiquetas separadas por coma")
	return cmd
}

func splitList(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
