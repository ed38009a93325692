package argparse

// Banner is printed before the arguments are parsed.
const Banner = `
                                            .
                                          .#
                   .                     .##
                  #.                     #  :
               .# .                     .# .#
               .. .       ..##.         #   #
               #  .     .#.    #       #    #
                     .#         #.    #    #
              #    #             #.  #.    #
              # .#                ##      #
              ##.                #.      :#       ____  _____ _____ _   _
              #                 .# .:   .#       / __ \|  __ \_   _| \ | |
           .:.      .    .      .#..   .#       | |  | | |  | || | |  \| |
          .####  . . ...####     #.   #.        | |  | | |  | || | | . ` + "`" + ` |
         # .##   . # . #.#   . =# .##.#         | |__| | |__| || |_| |\  |
         . .##   .  #   ..   # = .=#  #          \____/|_____/_____|_| \_|
        #   . ####     .###,  ,      ##
        #.## .               '#.. #    #                       Observation
         .                      ##.. . #                       Driven
                                  .#   #                       Inference
                                    #. /                   of eNsembles
                                        .#

     ----------------------------------------------------------------------
`
